package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/internal/models"
	"github.com/noah-isme/grade-request-portal/internal/validation"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
}

// AuthHandler wires the HTML auth pages to the auth service.
type AuthHandler struct {
	service authService
	cookies *CookieHelper
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookies *CookieHelper) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies}
}

// Index renders the landing page.
func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page(c, "Grade correction requests"))
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page(c, "Register"))
}

// Register creates an account and redirects to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	data := page(c, "Register")
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "register.html", data)
		return
	}
	data["Form"] = formValues(c, "password")

	req, err := validation.DecodeRegistration(c.Request.PostForm)
	if err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "register.html", data)
		return
	}
	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		c.HTML(withError(c, data, err), "register.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	data := page(c, "Log in")
	data["Registered"] = c.Query("registered") == "1"
	c.HTML(http.StatusOK, "login.html", data)
}

// Login verifies credentials, sets the session cookie and redirects to the dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	data := page(c, "Log in")
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "login.html", data)
		return
	}
	data["Form"] = formValues(c, "password")

	req, err := validation.DecodeLogin(c.Request.PostForm)
	if err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "login.html", data)
		return
	}
	req.IP = c.ClientIP()

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.HTML(withError(c, data, err), "login.html", data)
		return
	}
	h.cookies.SetSession(c, res.Token)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.ClearSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}
