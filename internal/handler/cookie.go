package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/pkg/session"
)

// CookieConfig configures the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// CookieHelper writes and clears the session cookie. The token carries no
// expiry, so Max-Age is the only lifetime bound and it is enforced by the
// browser alone.
type CookieHelper struct {
	config CookieConfig
}

// NewCookieHelper creates a cookie helper. Zero values fall back to
// user_data and one day.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	if config.Name == "" {
		config.Name = session.CookieName
	}
	if config.MaxAge <= 0 {
		config.MaxAge = 24 * time.Hour
	}
	return &CookieHelper{config: config}
}

// Name returns the cookie name.
func (h *CookieHelper) Name() string { return h.config.Name }

// SetSession stores token. The value is written unescaped so the cookie holds
// the token byte for byte.
func (h *CookieHelper) SetSession(c *gin.Context, token string) {
	h.write(c, token, int(h.config.MaxAge.Seconds()))
}

// ClearSession expires the cookie.
func (h *CookieHelper) ClearSession(c *gin.Context) {
	h.write(c, "", -1)
}

func (h *CookieHelper) write(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.config.Name,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
