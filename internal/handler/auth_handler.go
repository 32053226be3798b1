package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/internal/session"
)

// LoginForm is the login form body
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterForm is the register form body
type RegisterForm struct {
	Name                 string `form:"name" json:"name" binding:"required"`
	Email                string `form:"email" json:"email" binding:"required"`
	Password             string `form:"password" json:"password" binding:"required"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
}

const (
	loginIncompleteMessage    = "Email dan password wajib diisi."
	registerIncompleteMessage = "Nama, email, dan password wajib diisi."
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	pages   *Pages
	backend BackendFunc
	auth    service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(pages *Pages, backend BackendFunc, auth service.AuthService) *AuthHandler {
	return &AuthHandler{pages: pages, backend: backend, auth: auth}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	sess := session.FromContext(c)
	if sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, service.HomeFor(sess.GetUser()))
		return
	}

	page := h.pages.New(c, "Masuk")
	page.Data = &LoginForm{}
	h.pages.Render(c, http.StatusOK, "login", page)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	bindErr := c.ShouldBind(&form)

	page := h.pages.New(c, "Masuk")
	page.Data = &LoginForm{Email: form.Email}

	if bindErr != nil {
		h.pages.Fail(c, http.StatusUnprocessableEntity, "login", page, loginIncompleteMessage)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), h.backend(c), session.FromContext(c), form.Email, form.Password)
	if err != nil {
		// wrong credentials come back as a backend 401
		h.pages.Fail(c, statusFor(err), "login", page, service.LoginErrorMessage(err))
		return
	}

	h.pages.Done(c, service.HomeFor(user), "", user)
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	sess := session.FromContext(c)
	if sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, service.HomeFor(sess.GetUser()))
		return
	}

	page := h.pages.New(c, "Daftar")
	page.Data = &RegisterForm{}
	h.pages.Render(c, http.StatusOK, "register", page)
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	bindErr := c.ShouldBind(&form)

	page := h.pages.New(c, "Daftar")
	page.Data = &RegisterForm{Name: form.Name, Email: form.Email}

	if bindErr != nil {
		h.pages.Fail(c, http.StatusUnprocessableEntity, "register", page, registerIncompleteMessage)
		return
	}

	err := h.auth.Register(c.Request.Context(), h.backend(c), service.RegisterInput{
		Name:                 form.Name,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if err != nil {
		h.pages.Fail(c, statusFor(err), "register", page, service.RegisterErrorMessage(err))
		return
	}

	h.pages.Done(c, "/login", "Registrasi berhasil! Silakan masuk.", nil)
}

// Logout handles POST /logout. The cart is emptied along with the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session.FromContext(c).Clear()
	if err := h.pages.Cart(c).Clear(c.Request.Context()); err != nil {
		h.pages.logger.Warn("failed to clear cart on logout")
	}
	h.pages.Done(c, "/", "", nil)
}
