package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/pkg/session"
)

// ContextSessionKey is the gin context key storing the decoded session.
const ContextSessionKey = "currentSession"

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

type sessionAuthenticator interface {
	Authenticate(token string) (*session.Payload, error)
}

// RequireSession protects routes by requiring a valid session cookie.
// Missing or tampered cookies redirect to the login page.
func RequireSession(auth sessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := readSession(c, auth, cookieName)
		if !ok {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, payload)
		c.Next()
	}
}

// OptionalSession attaches the session when present but does not block.
func OptionalSession(auth sessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, ok := readSession(c, auth, cookieName); ok {
			c.Set(ContextSessionKey, payload)
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c *gin.Context) (*session.Payload, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	payload, ok := v.(*session.Payload)
	return payload, ok && payload != nil
}

func readSession(c *gin.Context, auth sessionAuthenticator, cookieName string) (*session.Payload, bool) {
	// Read the raw value: gin's c.Cookie query-unescapes, which would turn
	// '+' from the base64 part into a space.
	cookie, err := c.Request.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	payload, err := auth.Authenticate(cookie.Value)
	if err != nil {
		return nil, false
	}
	return payload, true
}
