package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/internal/middleware"
	"github.com/noah-isme/grade-request-portal/internal/models"
	"github.com/noah-isme/grade-request-portal/internal/service"
	"github.com/noah-isme/grade-request-portal/internal/validation"
	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
	"github.com/noah-isme/grade-request-portal/pkg/response"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

type requestService interface {
	Submit(ctx context.Context, owner session.Payload, req models.SubmitRequest) (*models.GradeRequest, error)
	ListMine(ctx context.Context, owner session.Payload) ([]models.GradeRequest, error)
	CountMine(ctx context.Context, owner session.Payload) (int, error)
}

type exportService interface {
	Export(ctx context.Context, owner session.Payload, format string) (*service.ExportFile, error)
}

// RequestHandler serves the pages behind the session cookie.
type RequestHandler struct {
	requests requestService
	exports  exportService
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(requests requestService, exports exportService) *RequestHandler {
	return &RequestHandler{requests: requests, exports: exports}
}

func currentUser(c *gin.Context) (session.Payload, bool) {
	p, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		c.Abort()
		return session.Payload{}, false
	}
	return *p, true
}

// Dashboard shows the user summary.
func (h *RequestHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := h.requests.CountMine(c.Request.Context(), user)
	if err != nil {
		renderError(c, err)
		return
	}
	data := page(c, "Dashboard")
	data["Count"] = count
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// SubmitForm renders the grade-correction form.
func (h *RequestHandler) SubmitForm(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	c.HTML(http.StatusOK, "submit_request.html", page(c, "New grade-correction request"))
}

// Submit stores a request and redirects to the list.
func (h *RequestHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	data := page(c, "New grade-correction request")
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "submit_request.html", data)
		return
	}
	data["Form"] = formValues(c)

	req, err := validation.DecodeSubmission(c.Request.PostForm)
	if err != nil {
		c.HTML(withError(c, data, validation.AppError(err)), "submit_request.html", data)
		return
	}
	if _, err := h.requests.Submit(c.Request.Context(), user, req); err != nil {
		c.HTML(withError(c, data, err), "submit_request.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, "/my-requests")
}

// MyRequests lists the user's requests, newest first.
func (h *RequestHandler) MyRequests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.requests.ListMine(c.Request.Context(), user)
	if err != nil {
		renderError(c, err)
		return
	}
	data := page(c, "My requests")
	data["Requests"] = list
	c.HTML(http.StatusOK, "my_requests.html", data)
}

// Export godoc
// @Summary Download own grade-correction requests
// @Tags Requests
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 303 "redirect to /login without a session"
// @Router /my-requests/export [get]
func (h *RequestHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	file, err := h.exports.Export(c.Request.Context(), user, c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		if appErrors.FromError(err).Status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		response.Error(c, err)
		return
	}
	response.Download(c, file.Filename, file.ContentType, file.Data)
}
