package http

import (
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sentimeter/internal/errors"
	"sentimeter/internal/pipeline"
	"sentimeter/pkg/contracts/domain"
)

// acceptedExtensions lists the upload formats the parser understands.
var acceptedExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".txt":  true,
	".xlsx": true,
	".xlsm": true,
}

// AnalysisHandler handles analysis HTTP requests
type AnalysisHandler struct {
	service        AnalysisServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "analysis_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Analyze)

	return r
}

// AnalysisResponse is the success envelope for POST /api/analysis.
type AnalysisResponse struct {
	Success bool                   `json:"success"`
	Result  *domain.AnalysisResult `json:"result"`
}

// Analyze handles POST /api/analysis. It accepts a multipart form with the
// dataset under "file" and the optional boolean fields "translate" and
// "validate", and responds with the complete analysis result.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); !acceptedExtensions[ext] {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidFileFormat)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read upload",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	req := pipeline.Request{
		Filename:  header.Filename,
		Data:      data,
		Translate: parseFlag(r.FormValue("translate")),
		// Validation is opt-out: it only runs when the file actually carries
		// a ground-truth column, so the default costs nothing otherwise.
		Validate: parseFlagDefault(r.FormValue("validate"), true),
	}

	result, err := h.service.Analyze(ctx, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, AnalysisResponse{Success: true, Result: result})
}

// parseFlag interprets the lenient boolean spellings form clients send.
func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// parseFlagDefault is parseFlag with a fallback for an absent field.
func parseFlagDefault(value string, def bool) bool {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return parseFlag(value)
}
