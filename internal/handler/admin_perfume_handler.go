package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/shopspring/decimal"
)

const (
	perfumesLoadFailedMessage = "Gagal memuat data parfum."
	perfumeCreatedMessage     = "Parfum berhasil ditambahkan."
	perfumeUpdatedMessage     = "Parfum berhasil diperbarui."
	perfumeDeletedMessage     = "Parfum berhasil dihapus."
)

// PerfumeForm is the create and edit form. Price and stock stay strings so a
// rejected form is shown back as typed.
type PerfumeForm struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `form:"name" json:"name"`
	Brand       string `form:"brand" json:"brand"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Stock       string `form:"stock" json:"stock"`
}

// Input converts the form. Blank or malformed numbers are validation errors.
func (f PerfumeForm) Input() (domain.PerfumeInput, error) {
	in := domain.PerfumeInput{
		Name:        strings.TrimSpace(f.Name),
		Brand:       strings.TrimSpace(f.Brand),
		Description: strings.TrimSpace(f.Description),
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return in, domain.ErrInvalidPrice
	}
	in.Price = price
	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil {
		return in, domain.ErrInvalidStock
	}
	in.Stock = stock
	return in, in.Validate()
}

// Action is where the form posts
func (f PerfumeForm) Action() string {
	if f.ID > 0 {
		return fmt.Sprintf("/admin/perfumes/%d", f.ID)
	}
	return "/admin/perfumes"
}

// ImagesView is the model of the image management page
type ImagesView struct {
	Perfume *domain.Perfume       `json:"perfume"`
	Images  []domain.PerfumeImage `json:"images"`
	Accept  string                `json:"accept"`
	MaxMB   int64                 `json:"max_mb"`
}

// AdminPerfumeHandler handles catalog management
type AdminPerfumeHandler struct {
	pages    *Pages
	backend  BackendFunc
	perfumes service.AdminPerfumeService
}

// NewAdminPerfumeHandler creates a new admin perfume handler
func NewAdminPerfumeHandler(pages *Pages, backend BackendFunc, perfumes service.AdminPerfumeService) *AdminPerfumeHandler {
	return &AdminPerfumeHandler{pages: pages, backend: backend, perfumes: perfumes}
}

// List handles GET /admin/perfumes
func (h *AdminPerfumeHandler) List(c *gin.Context) {
	page := h.pages.New(c, "Daftar Parfum")

	perfumes, err := h.perfumes.List(c.Request.Context(), h.backend(c))
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = []domain.Perfume{}
		h.pages.Fail(c, statusFor(err), "admin_perfumes", page, perfumesLoadFailedMessage)
		return
	}

	page.Data = perfumes
	h.pages.Render(c, http.StatusOK, "admin_perfumes", page)
}

// CreatePage handles GET /admin/perfumes/create
func (h *AdminPerfumeHandler) CreatePage(c *gin.Context) {
	page := h.pages.New(c, "Tambah Parfum")
	page.Data = &PerfumeForm{Stock: "0"}
	h.pages.Render(c, http.StatusOK, "admin_perfume_form", page)
}

// Create handles POST /admin/perfumes
func (h *AdminPerfumeHandler) Create(c *gin.Context) {
	var form PerfumeForm
	_ = c.ShouldBind(&form)

	page := h.pages.New(c, "Tambah Parfum")
	page.Data = &form

	in, err := form.Input()
	if err != nil {
		h.pages.Fail(c, http.StatusUnprocessableEntity, "admin_perfume_form", page, service.PerfumeFormErrorMessage(err, ""))
		return
	}

	images, err := imageUploads(c)
	if err != nil {
		h.pages.Fail(c, http.StatusBadRequest, "admin_perfume_form", page, "Gagal membaca gambar.")
		return
	}
	defer closeUploads(images)

	result, err := h.perfumes.Create(c.Request.Context(), h.backend(c), in, images)
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Fail(c, statusFor(err), "admin_perfume_form", page, service.PerfumeFormErrorMessage(err, "Gagal menambahkan parfum."))
		return
	}

	msg := perfumeCreatedMessage
	if result.ImageErr != nil {
		msg += " Gagal mengunggah gambar. " + apiclient.Message(result.ImageErr, "")
	}
	msg += rejectionNote(result.Images.Rejected)
	h.pages.Done(c, "/admin/perfumes", strings.TrimSpace(msg), result)
}

// EditPage handles GET /admin/perfumes/:id/edit
func (h *AdminPerfumeHandler) EditPage(c *gin.Context) {
	page := h.pages.New(c, "Edit Parfum")

	perfume, err := h.perfumes.Get(c.Request.Context(), h.backend(c), paramID(c, "id"))
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), "/admin/perfumes", perfumesLoadFailedMessage)
		return
	}

	page.Data = &PerfumeForm{
		ID:          perfume.ID,
		Name:        perfume.Name,
		Brand:       perfume.Brand,
		Description: perfume.Description,
		Price:       perfume.Price.String(),
		Stock:       strconv.Itoa(perfume.Stock),
	}
	h.pages.Render(c, http.StatusOK, "admin_perfume_form", page)
}

// Update handles POST and PUT /admin/perfumes/:id
func (h *AdminPerfumeHandler) Update(c *gin.Context) {
	var form PerfumeForm
	_ = c.ShouldBind(&form)
	form.ID = paramID(c, "id")

	page := h.pages.New(c, "Edit Parfum")
	page.Data = &form

	in, err := form.Input()
	if err == nil {
		err = h.perfumes.Update(c.Request.Context(), h.backend(c), form.ID, in)
	}
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Fail(c, statusFor(err), "admin_perfume_form", page, service.PerfumeFormErrorMessage(err, "Gagal memperbarui parfum."))
		return
	}

	h.pages.Done(c, "/admin/perfumes", perfumeUpdatedMessage, nil)
}

// Delete handles POST /admin/perfumes/:id/delete and DELETE /admin/perfumes/:id
func (h *AdminPerfumeHandler) Delete(c *gin.Context) {
	if err := h.perfumes.Delete(c.Request.Context(), h.backend(c), paramID(c, "id")); err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), "/admin/perfumes", strings.TrimSpace("Gagal menghapus parfum. "+apiclient.Message(err, "")))
		return
	}
	h.pages.Done(c, "/admin/perfumes", perfumeDeletedMessage, nil)
}

// Images handles GET /admin/perfumes/:id/images
func (h *AdminPerfumeHandler) Images(c *gin.Context) {
	page := h.pages.New(c, "Kelola Gambar")
	ctx := c.Request.Context()
	api := h.backend(c)
	id := paramID(c, "id")

	perfume, err := h.perfumes.Get(ctx, api, id)
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), "/admin/perfumes", perfumesLoadFailedMessage)
		return
	}

	images, err := h.perfumes.Images(ctx, api, id)
	model := imagesView(perfume, images)
	page.Data = model
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Fail(c, statusFor(err), "admin_images", page, "Gagal memuat gambar.")
		return
	}

	h.pages.Render(c, http.StatusOK, "admin_images", page)
}

// UploadImages handles POST /admin/perfumes/:id/images
func (h *AdminPerfumeHandler) UploadImages(c *gin.Context) {
	id := paramID(c, "id")
	back := imagesLocation(id)

	images, err := imageUploads(c)
	if err != nil {
		h.pages.Reject(c, http.StatusBadRequest, back, "Gagal membaca gambar.")
		return
	}
	defer closeUploads(images)
	if len(images) == 0 {
		h.pages.Reject(c, http.StatusUnprocessableEntity, back, "Pilih gambar terlebih dahulu.")
		return
	}

	result, err := h.perfumes.UploadImages(c.Request.Context(), h.backend(c), id, images)
	if err != nil {
		if Handled(c, err) {
			return
		}
		msg := "Gagal mengunggah gambar. " + apiclient.Message(err, "")
		if result != nil {
			msg += rejectionNote(result.Rejected)
		}
		h.pages.Reject(c, statusFor(err), back, strings.TrimSpace(msg))
		return
	}

	msg := fmt.Sprintf("%d gambar berhasil diunggah.", result.Uploaded) + rejectionNote(result.Rejected)
	h.pages.Done(c, back, msg, result)
}

// SetPrimaryImage handles POST /admin/perfumes/:id/images/:imageId/primary
func (h *AdminPerfumeHandler) SetPrimaryImage(c *gin.Context) {
	id := paramID(c, "id")
	if err := h.perfumes.SetPrimaryImage(c.Request.Context(), h.backend(c), id, paramID(c, "imageId")); err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), imagesLocation(id), "Gagal mengatur gambar utama.")
		return
	}
	h.pages.Done(c, imagesLocation(id), "Gambar utama berhasil diatur.", nil)
}

// DeleteImage handles POST /admin/perfumes/:id/images/:imageId/delete
func (h *AdminPerfumeHandler) DeleteImage(c *gin.Context) {
	id := paramID(c, "id")
	if err := h.perfumes.DeleteImage(c.Request.Context(), h.backend(c), id, paramID(c, "imageId")); err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), imagesLocation(id), "Gagal menghapus gambar.")
		return
	}
	h.pages.Done(c, imagesLocation(id), "Gambar berhasil dihapus.", nil)
}

func imagesView(perfume *domain.Perfume, images []domain.PerfumeImage) *ImagesView {
	if images == nil {
		images = []domain.PerfumeImage{}
	}
	p := service.PerfumeImagePolicy
	return &ImagesView{
		Perfume: perfume,
		Images:  images,
		Accept:  strings.Join(p.Types, ","),
		MaxMB:   p.MaxSize >> 20,
	}
}

func imagesLocation(id int64) string {
	return fmt.Sprintf("/admin/perfumes/%d/images", id)
}

// imageUploads reads both "images[]" and "images"
func imageUploads(c *gin.Context) ([]apiclient.Upload, error) {
	var all []apiclient.Upload
	for _, field := range []string{"images[]", "images"} {
		ups, err := formUploads(c, field)
		if err != nil {
			closeUploads(all)
			return nil, err
		}
		all = append(all, ups...)
	}
	return all, nil
}

func rejectionNote(rejected []service.FileRejection) string {
	if len(rejected) == 0 {
		return ""
	}
	parts := make([]string, 0, len(rejected))
	for _, r := range rejected {
		parts = append(parts, r.Filename+": "+r.Reason)
	}
	return " Dilewati: " + strings.Join(parts, ", ") + "."
}
