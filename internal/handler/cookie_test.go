package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieHelperDefaults(t *testing.T) {
	h := NewCookieHelper(CookieConfig{})
	assert.Equal(t, "user_data", h.Name())
	assert.Equal(t, 24*time.Hour, h.config.MaxAge)
}

func TestCookieHelperSetSessionKeepsTokenBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	token := "eyJ1c2VyX2lkIjoxfQ+/=.abcdef"
	NewCookieHelper(CookieConfig{Secure: true}).SetSession(c, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, token, cookie.Value)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
}

func TestCookieHelperClearSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	NewCookieHelper(CookieConfig{}).ClearSession(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
