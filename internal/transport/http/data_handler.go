package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"cbmcli/internal/analytics"
	apierrors "cbmcli/internal/errors"
	"cbmcli/internal/exporter"
	"cbmcli/internal/services"
)

// DataHandler handles query-layer HTTP requests over the unified dataset
type DataHandler struct {
	service      *services.DataService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler
func NewDataHandler(service *services.DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the query routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Post("/filter", h.Filter)
	r.Get("/timeseries", h.GetTimeSeries)
	r.Post("/correlation", h.Correlation)
	r.Get("/categories", h.GetCategories)
	r.Get("/export/{format}", h.Export)
	r.Post("/export/{format}", h.Export)

	return r
}

// GetSummary handles GET /api/summary
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Summary(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}

// Filter handles POST /api/filter: body is a filter spec mapping column
// names to a scalar or a list of scalars.
func (h *DataHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var spec analytics.FilterSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	filtered := h.service.Filter(r.Context(), spec)

	data, err := exporter.JSON(filtered)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"success","count":%d,"data":%s}`, filtered.Len(), data)
}

// GetTimeSeries handles GET /api/timeseries?column=&group_by=
func (h *DataHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	column := r.URL.Query().Get("column")
	if column == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("column", "Target column is required"))
		return
	}
	groupBy := r.URL.Query().Get("group_by")

	series := h.service.TimeSeries(r.Context(), column, groupBy)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   series,
	})
}

// CorrelationRequest names the candidate columns for a correlation matrix
type CorrelationRequest struct {
	Columns []string `json:"columns" validate:"required,min=1,dive,required"`
}

// Correlation handles POST /api/correlation
func (h *DataHandler) Correlation(w http.ResponseWriter, r *http.Request) {
	var req CorrelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("columns", "At least one candidate column is required"))
		return
	}

	matrix := h.service.Correlation(r.Context(), req.Columns)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   matrix,
	})
}

// GetCategories handles GET /api/categories
func (h *DataHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

// Export handles /api/export/{format}. An optional JSON body carries a
// filter spec; the exported view is the filtered dataset, or the whole
// unified dataset when the body is empty.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	rs := h.service.Unified()
	if r.Method == http.MethodPost && r.Body != nil {
		var spec analytics.FilterSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err == nil && len(spec) > 0 {
			rs = analytics.Filter(rs, spec)
		}
	}

	switch format {
	case "json":
		data, err := exporter.JSON(rs)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	case "csv":
		data, err := exporter.CSV(rs)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="cbm_data.csv"`)
		w.Write(data)
	case "xlsx":
		data, err := exporter.Excel(rs)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="cbm_data.xlsx"`)
		w.Write(data)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Unsupported export format: %s", format)))
	}
}
