package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/cart"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/internal/session"
	"github.com/jamalparfum/storefront/internal/view"
	"github.com/jamalparfum/storefront/pkg/response"
	"go.uber.org/zap"
)

const (
	contextKeyCart = "cart"
	flashCookie    = "flash"
	flashTTL       = time.Minute
)

// BackendFunc returns the backend acting for the request's session
type BackendFunc func(c *gin.Context) service.Backend

// BindBackend binds client to the request's session. When the backend rejects
// the token the session is cleared, the request is answered (302 to / for
// browsers, 401 for JSON clients) and the gin chain is aborted.
func BindBackend(client *apiclient.Client) BackendFunc {
	return func(c *gin.Context) service.Backend {
		return client.Bind(session.FromContext(c), func() { signOut(c) })
	}
}

// BindGuest binds client without credentials for login and registration, where
// a 401 means wrong credentials rather than an expired session.
func BindGuest(client *apiclient.Client) BackendFunc {
	return func(*gin.Context) service.Backend {
		return client.Bind(nil, nil)
	}
}

func signOut(c *gin.Context) {
	if c.IsAborted() {
		return
	}
	if wantsJSON(c) {
		response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sesi berakhir, silakan masuk kembali.")
		return
	}
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

// Pages holds what every page handler shares: the cart opener, the backend
// base URL for image paths and the logger.
type Pages struct {
	carts   cart.Opener
	baseURL string
	logger  *zap.Logger
}

// NewPages creates the shared page helper
func NewPages(carts cart.Opener, baseURL string, logger *zap.Logger) *Pages {
	if carts == nil {
		carts = func(session.Jar) cart.Storage { return cart.NewMemoryStorage() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{carts: carts, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// Cart opens the visitor's cart once per request
func (p *Pages) Cart(c *gin.Context) *cart.Store {
	if v, ok := c.Get(contextKeyCart); ok {
		if store, ok := v.(*cart.Store); ok {
			return store
		}
	}
	store := cart.Open(c.Request.Context(), p.carts(session.FromContext(c).Jar()), p.logger)
	c.Set(contextKeyCart, store)
	return store
}

// New builds the page chrome for the current visitor and consumes the pending flash message
func (p *Pages) New(c *gin.Context, title string) *view.Page {
	sess := session.FromContext(c)
	user := sess.GetUser()
	if user == nil && sess.IsAuthenticated() {
		user = &domain.User{Role: domain.RoleUser}
	}

	page := &view.Page{
		Title:   title,
		Path:    c.Request.URL.Path,
		User:    user,
		Nav:     view.NavFor(user, c.Request.URL.Path),
		BaseURL: p.baseURL,
		Flash:   popFlash(sess.Jar()),
	}
	if sess.IsAuthenticated() && !user.IsAdmin() {
		page.CartCount = p.Cart(c).TotalItems()
	}
	return page
}

// Render answers with the page: the page model for JSON clients, the named template otherwise
func (p *Pages) Render(c *gin.Context, status int, name string, page *view.Page) {
	if wantsJSON(c) {
		if page.Error != "" {
			response.Error(c, status, errorCode(status), page.Error, "")
			return
		}
		response.JSON(c, status, page.Data)
		return
	}
	c.HTML(status, name, page)
}

// Fail renders the page with an inline error message
func (p *Pages) Fail(c *gin.Context, status int, name string, page *view.Page, message string) {
	page.Error = message
	p.Render(c, status, name, page)
}

// Done finishes a form submission: JSON clients get data and the message,
// browsers are redirected with the message kept for the next page.
func (p *Pages) Done(c *gin.Context, location, message string, data interface{}) {
	if wantsJSON(c) {
		response.Success(c, gin.H{"message": message, "redirect": location, "result": data})
		return
	}
	if message != "" {
		setFlash(session.FromContext(c).Jar(), message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// Reject refuses a form submission: JSON clients get the error envelope,
// browsers are sent back to location with the message.
func (p *Pages) Reject(c *gin.Context, status int, location, message string) {
	if wantsJSON(c) {
		response.Error(c, status, errorCode(status), message, "")
		return
	}
	setFlash(session.FromContext(c).Jar(), message)
	c.Redirect(http.StatusSeeOther, location)
}

// Handled reports whether err already produced a response. A 401 from the
// backend signs the visitor out and redirects home; nothing else may be written.
func Handled(c *gin.Context, err error) bool {
	if c.IsAborted() {
		return true
	}
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	session.FromContext(c).Clear()
	signOut(c)
	return true
}

// statusFor maps an error to the status of the page that reports it
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case domain.IsNotFoundError(err):
		return http.StatusNotFound
	case domain.IsStateError(err):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.Is(err, apiclient.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusServiceUnavailable:
		return "BACKEND_UNAVAILABLE"
	}
	if status >= 500 {
		return "BACKEND_ERROR"
	}
	return "ERROR"
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func paramID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func setFlash(jar session.Jar, message string) {
	if jar == nil {
		return
	}
	jar.Set(flashCookie, base64.RawURLEncoding.EncodeToString([]byte(message)), flashTTL)
}

func popFlash(jar session.Jar) string {
	if jar == nil {
		return ""
	}
	raw, ok := jar.Get(flashCookie)
	if !ok {
		return ""
	}
	jar.Delete(flashCookie)
	msg, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	return string(msg)
}

// formUploads opens the files of a multipart field. Release them with closeUploads.
func formUploads(c *gin.Context, field string) ([]apiclient.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	var uploads []apiclient.Upload
	for _, fh := range form.File[field] {
		up, err := openUpload(fh)
		if err != nil {
			closeUploads(uploads)
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func openUpload(fh *multipart.FileHeader) (apiclient.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return apiclient.Upload{}, err
	}
	return apiclient.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        f,
	}, nil
}

func closeUploads(uploads []apiclient.Upload) {
	for _, up := range uploads {
		if cl, ok := up.Data.(io.Closer); ok {
			_ = cl.Close()
		}
	}
}
