package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/objectifs/objectifs/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
	fileService   *service.FileService
}

func NewExportHandler(exportService *service.ExportService, fileService *service.FileService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		fileService:   fileService,
	}
}

func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) error {
	return h.download(w, r, service.FormatPDF)
}

func (h *ExportHandler) Excel(w http.ResponseWriter, r *http.Request) error {
	return h.download(w, r, service.FormatExcel)
}

func (h *ExportHandler) Template(w http.ResponseWriter, r *http.Request) error {
	return h.download(w, r, service.FormatTemplate)
}

func (h *ExportHandler) download(w http.ResponseWriter, r *http.Request, format string) error {
	out, err := h.exportService.Export(currentUser(r).ID, exportRequest(r, format))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Body)))
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(out.Body)
	if err != nil {
		// Headers are gone, nothing left to report to the client.
		slog.Warn("failed to write report", "error", err, "filename", out.Filename)
	}
	return nil
}

// Archive stores a report in object storage. format defaults to pdf.
func (h *ExportHandler) Archive(w http.ResponseWriter, r *http.Request) error {
	file, err := h.fileService.Archive(r.Context(), currentUser(r).ID, exportRequest(r, r.URL.Query().Get("format")))
	if err != nil {
		return err
	}
	return created(w, file)
}

func (h *ExportHandler) Archives(w http.ResponseWriter, r *http.Request) error {
	files, err := h.fileService.Archives(r.Context(), currentUser(r).ID)
	if err != nil {
		return err
	}
	return list(w, files)
}

func (h *ExportHandler) DeleteArchive(w http.ResponseWriter, r *http.Request) error {
	err := h.fileService.Delete(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}

func exportRequest(r *http.Request, format string) service.ExportRequest {
	q := r.URL.Query()
	return service.ExportRequest{
		Format:   format,
		Period:   q.Get("period"),
		Category: q.Get("category"),
	}
}
