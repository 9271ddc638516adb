package http

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	apierrors "cbmcli/internal/errors"
	"cbmcli/internal/middleware"
	"cbmcli/internal/services"
)

// UploadHandler handles measurement export uploads
type UploadHandler struct {
	service        *services.DataService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *services.DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "upload_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the upload routes
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Delete("/", h.Reset)
	r.Get("/", h.Sources)

	return r
}

// Upload handles POST /api/files: one or more spreadsheet exports in a
// multipart form. Each file is ingested independently; a file that fails
// to decode is reported in the response without failing the batch.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	batchID := uuid.New().String()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("files", "At least one file is required"))
		return
	}

	h.logger.InfoContext(r.Context(), "ingesting upload batch",
		slog.String("request_id", reqID),
		slog.String("batch_id", batchID),
		slog.Int("file_count", len(fileHeaders)))

	results := make([]services.FileResult, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		results = append(results, h.ingestOne(r, fh))
	}

	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"batch_id": batchID,
		"files":    results,
	})
}

func (h *UploadHandler) ingestOne(r *http.Request, fh *multipart.FileHeader) services.FileResult {
	f, err := fh.Open()
	if err != nil {
		return services.FileResult{Filename: fh.Filename, Error: err.Error()}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return services.FileResult{Filename: fh.Filename, Error: err.Error()}
	}

	src, err := h.service.IngestFile(r.Context(), content, fh.Filename)
	if err != nil {
		h.logger.WarnContext(r.Context(), "file rejected",
			slog.String("filename", fh.Filename),
			slog.String("error", err.Error()))
		return services.FileResult{Filename: fh.Filename, Error: err.Error()}
	}
	return services.FileResult{Filename: src.Filename, Vessel: src.Vessel, Rows: src.Rows}
}

// Reset handles DELETE /api/files: discards the unified dataset.
func (h *UploadHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset()
	render.JSON(w, r, map[string]interface{}{"status": "success"})
}

// Sources handles GET /api/files: lists the ingested exports.
func (h *UploadHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources := h.service.Sources()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   sources,
		"count":  len(sources),
	})
}
