package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/report"
	"github.com/objectifs/objectifs/internal/repository"
)

const (
	FormatPDF      = "pdf"
	FormatExcel    = "excel"
	FormatTemplate = "template"
)

var renderers = map[string]report.Renderer{
	FormatPDF:      report.PDFRenderer{},
	FormatExcel:    report.ExcelRenderer{},
	FormatTemplate: report.TemplateRenderer{},
}

type ExportRequest struct {
	Format   string
	Period   string
	Category string
}

// Rendered is a finished report file.
type Rendered struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportService struct {
	objectives *ObjectiveService
	users      repository.UserRepository
	assembler  *report.Assembler
	now        func() time.Time
}

func NewExportService(
	objectives *ObjectiveService,
	users repository.UserRepository,
	assembler *report.Assembler,
	now func() time.Time,
) *ExportService {
	return &ExportService{
		objectives: objectives,
		users:      users,
		assembler:  assembler,
		now:        clockOrNow(now),
	}
}

// Export assembles the user's report for the requested period and renders it
// in full before returning, so a rendering error never yields a partial file.
func (s *ExportService) Export(userID string, req ExportRequest) (*Rendered, error) {
	renderer, ok := renderers[req.Format]
	if !ok {
		return nil, apperr.Validationf("invalid format %q", req.Format)
	}

	period, err := report.ParsePeriod(req.Period)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, storeErr(err, repository.ErrUserNotFound, "user not found")
	}

	objs, err := s.objectives.Reports(userID, model.Category(req.Category))
	if err != nil {
		return nil, err
	}

	today := model.DateOf(s.now())
	doc := s.assembler.Assemble(objs, period, today, user.Name)

	var buf bytes.Buffer
	err = renderer.Render(&buf, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", req.Format, err)
	}

	slog.Info("report exported",
		"user_id", userID,
		"format", req.Format,
		"period", period,
		"objectives", len(objs),
		"bytes", buf.Len(),
	)

	return &Rendered{
		Filename:    filename(req.Format, period, req.Category, today, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// filename looks like objectives-weekly-spiritual-2024-03-01.pdf.
func filename(format string, period report.Period, category string, today model.Date, ext string) string {
	name := "objectives-" + string(period)
	if format == FormatTemplate {
		name = "objectives-template"
	}
	if category != "" {
		name += "-" + category
	}
	return fmt.Sprintf("%s-%s.%s", name, today, ext)
}
