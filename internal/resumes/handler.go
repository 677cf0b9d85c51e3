package resumes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cat-resume-api/internal/shared/metrics"
	"cat-resume-api/internal/shared/server/middleware"
	"cat-resume-api/internal/shared/server/respond"
	"cat-resume-api/internal/uploads"
)

const (
	formField = "resume"
	// multipartOverhead bounds the form encoding around a maximum-size file.
	multipartOverhead = 1 << 20
	defaultListLimit  = 20
	maxListLimit      = 100
)

// Handler wires HTTP handlers to the resume service.
type Handler struct {
	Svc   *Service
	Spool *uploads.Spool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, spool *uploads.Spool) *Handler {
	return &Handler{Svc: svc, Spool: spool}
}

// RegisterRoutes attaches the versioned resume and history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.Upload)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

// Upload accepts a multipart PDF in the "resume" field and returns the generated result.
func (h *Handler) Upload(c *gin.Context) {
	requestID := middleware.RequestIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Spool.MaxBytes+multipartOverhead)

	fh, err := c.FormFile(formField)
	if err != nil {
		metrics.IncResumeRejected()
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respond.Error(c, http.StatusBadRequest, "file_too_large", sizeLimitMessage(h.Spool.MaxBytes), nil)
		case errors.Is(err, http.ErrMissingFile):
			respond.Error(c, http.StatusBadRequest, "missing_file", "No resume file uploaded", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "invalid_upload", "Invalid multipart upload", err.Error())
		}
		return
	}

	tf, err := h.Spool.Accept(fh, requestID)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrNotPDF):
			metrics.IncResumeRejected()
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Only PDF files are allowed", nil)
		case errors.Is(err, uploads.ErrTooLarge):
			metrics.IncResumeRejected()
			respond.Error(c, http.StatusBadRequest, "file_too_large", sizeLimitMessage(h.Spool.MaxBytes), nil)
		case errors.Is(err, uploads.ErrInvalidUpload):
			metrics.IncResumeRejected()
			respond.Error(c, http.StatusBadRequest, "invalid_upload", "Invalid upload", nil)
		default:
			metrics.IncResumeFailed()
			respond.Error(c, http.StatusInternalServerError, "processing_failed", "Error processing resume", err.Error())
		}
		return
	}
	defer tf.Release()

	metrics.IncResumeReceived()
	analysis, err := h.Svc.Process(c.Request.Context(), tf)
	if err != nil {
		metrics.IncResumeFailed()
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "Error processing resume", err.Error())
		return
	}
	metrics.IncResumeCompleted()

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	c.Set(middleware.FallbackStagesKey, analysis.FallbackStages)
	respond.OK(c, analysis.Result)
}

// sizeLimitMessage renders the upload cap in the largest whole unit.
func sizeLimitMessage(maxBytes int64) string {
	switch {
	case maxBytes > 0 && maxBytes%(1<<20) == 0:
		return fmt.Sprintf("File exceeds the %dMB limit", maxBytes>>20)
	case maxBytes > 0 && maxBytes%(1<<10) == 0:
		return fmt.Sprintf("File exceeds the %dKB limit", maxBytes>>10)
	default:
		return fmt.Sprintf("File exceeds the %d byte limit", maxBytes)
	}
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = min(parsed, maxListLimit)
	}
	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "offset must be a non-negative integer", nil)
			return
		}
		offset = parsed
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}
