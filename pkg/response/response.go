package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
)

// ErrorBody is the JSON shape of failures on JSON endpoints.
type ErrorBody struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends body as-is with caching disabled.
func JSON(c *gin.Context, status int, body interface{}) {
	noStore(c)
	c.JSON(status, body)
}

// Error sends a JSON error. Backend errors are reduced to a generic message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, ErrorBody{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErrors.PublicMessage(appErr),
		Field:   appErr.Field,
	})
}

// Download sends a file attachment.
func Download(c *gin.Context, filename, contentType string, data []byte) {
	noStore(c)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
