package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/grade-request-portal/internal/models"
	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
	"github.com/noah-isme/grade-request-portal/pkg/export"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var exportHeaders = []string{
	"request_id", "created_at", "cycle", "level", "nom_code_ue",
	"disputed", "just_p", "comment",
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type requestLister interface {
	ListMine(ctx context.Context, owner session.Payload) ([]models.GradeRequest, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a student's own requests as CSV or PDF.
type ExportService struct {
	requests requestLister
	csv      csvRenderer
	pdf      pdfRenderer
	now      func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(requests requestLister, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{requests: requests, csv: csv, pdf: pdf, now: time.Now}
}

// Export renders the owner's requests in format.
func (s *ExportService) Export(ctx context.Context, owner session.Payload, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		err := appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
		err.Field = "format"
		return nil, err
	}

	list, err := s.requests.ListMine(ctx, owner)
	if err != nil {
		return nil, err
	}
	data := buildRequestDataset(list)
	base := fmt.Sprintf("requests_%s_%s", sanitizeFilename(owner.Matricule), s.now().UTC().Format("20060102"))

	switch format {
	case FormatPDF:
		title := fmt.Sprintf("Grade correction requests - %s (%s)", owner.FullName(), owner.Matricule)
		out, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render pdf")
		}
		return &ExportFile{Filename: base + ".pdf", ContentType: "application/pdf", Data: out}, nil
	default:
		out, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render csv")
		}
		return &ExportFile{Filename: base + ".csv", ContentType: "text/csv; charset=utf-8", Data: out}, nil
	}
}

func buildRequestDataset(list []models.GradeRequest) export.Dataset {
	rows := make([]map[string]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, map[string]string{
			"request_id":  strconv.FormatInt(r.ID, 10),
			"created_at":  r.CreatedAt.UTC().Format("2006-01-02 15:04"),
			"cycle":       r.Cycle,
			"level":       strconv.Itoa(r.Level),
			"nom_code_ue": r.CourseUnit,
			"disputed":    strings.Join(r.DisputedComponents(), ", "),
			"just_p":      yesNo(r.JustificationProvided),
			"comment":     r.CommentText(),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sanitizeFilename(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "student"
	}
	return b.String()
}
