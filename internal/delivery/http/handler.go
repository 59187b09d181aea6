package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/infrastructure/imaging"
	"github.com/menuscan/backend/internal/usecase"
	"github.com/rs/zerolog"
)

const imageFormField = "image"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	extraction   *usecase.ExtractionService
	presentation *usecase.PresentationService
	logger       zerolog.Logger
}

// NewHandler creates a new HTTP handler. Nil services answer 503.
func NewHandler(
	extraction *usecase.ExtractionService,
	presentation *usecase.PresentationService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		extraction:   extraction,
		presentation: presentation,
		logger:       logger,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// ExtractResponse is the body of a finished extraction
type ExtractResponse struct {
	ExtractionID string                   `json:"extraction_id"`
	Outcome      domain.ExtractionOutcome `json:"outcome"`
	ProductCount int                      `json:"product_count"`
	Strategy     string                   `json:"strategy"`
	Message      string                   `json:"message,omitempty"`
	Export       domain.ExportDocument    `json:"export"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "menuscan-backend",
		"version": "1.0.0",
	})
}

// ExtractMenu handles a multipart menu image upload and returns the grouped products
func (h *Handler) ExtractMenu(c *gin.Context) {
	if h.extraction == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "menu extraction is not configured"})
		return
	}

	input, err := readUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.extraction.Extract(c.Request.Context(), input, nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newExtractResponse(result))
}

// ExtractMenuStream runs an extraction and streams progress as Server-Sent Events.
// Events: "progress" (zero or more), then exactly one "result" or "error".
func (h *Handler) ExtractMenuStream(c *gin.Context) {
	if h.extraction == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "menu extraction is not configured"})
		return
	}

	input, err := readUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	progress := usecase.NewProgressStream()
	events := progress.Subscribe()

	type extraction struct {
		result *domain.ExtractionResult
		err    error
	}
	done := make(chan extraction, 1)
	go func(ctx context.Context) {
		result, err := h.extraction.Extract(ctx, input, progress)
		done <- extraction{result: result, err: err}
	}(c.Request.Context())

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// the channel closes when Extract returns
	for event := range events {
		c.SSEvent("progress", event)
		c.Writer.Flush()
	}

	outcome := <-done
	if outcome.err != nil {
		h.logError(c, outcome.err)
		c.SSEvent("error", newErrorResponse(outcome.err))
	} else {
		c.SSEvent("result", newExtractResponse(outcome.result))
	}
	c.Writer.Flush()
}

// GeneratePresentation handles presentation copy requests
func (h *Handler) GeneratePresentation(c *gin.Context) {
	if h.presentation == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "presentation generation is not configured"})
		return
	}

	var profile domain.BusinessProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	presentation, err := h.presentation.Generate(c.Request.Context(), profile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, presentation)
}

// readUpload pulls the image part out of the multipart form and sniffs its MIME type
func readUpload(c *gin.Context) (usecase.ExtractionInput, error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.ExtractionInput{}, fmt.Errorf("%w: upload exceeds %d bytes", domain.ErrEncoding, tooLarge.Limit)
		}
		return usecase.ExtractionInput{}, fmt.Errorf("%w: multipart field %q", domain.ErrMissingImage, imageFormField)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return usecase.ExtractionInput{}, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxImageBytes+1))
	if err != nil {
		return usecase.ExtractionInput{}, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if len(data) == 0 {
		return usecase.ExtractionInput{}, domain.ErrMissingImage
	}

	// Trust the bytes over the client's declared type
	mimeType := imaging.DetectMIMEType(data)
	if !imaging.IsAcceptedMIMEType(mimeType) {
		if declared := imaging.NormalizeMIMEType(fileHeader.Header.Get("Content-Type")); imaging.IsAcceptedMIMEType(declared) {
			mimeType = declared
		}
	}

	return usecase.ExtractionInput{Image: data, MIMEType: mimeType}, nil
}

func newExtractResponse(result *domain.ExtractionResult) ExtractResponse {
	response := ExtractResponse{
		ExtractionID: result.ExtractionID,
		Outcome:      result.Outcome,
		ProductCount: result.ProductCount,
		Strategy:     result.Strategy,
		Export:       usecase.FormatExport(result.Groups),
	}
	if result.Outcome == domain.OutcomeEmpty {
		response.Message = "no items detected"
	}
	return response
}

func newErrorResponse(err error) ErrorResponse {
	if statusForError(err) == http.StatusInternalServerError {
		return ErrorResponse{Error: "internal server error"}
	}
	return ErrorResponse{Error: err.Error(), Retryable: domain.IsRetryable(err)}
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingImage),
		errors.Is(err, domain.ErrInvalidMIMEType),
		errors.Is(err, domain.ErrEncoding),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuth):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrTransport):
		if domain.IsTimeout(err) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUpstream),
		errors.Is(err, domain.ErrEmptyResponse),
		errors.Is(err, domain.ErrInvalidPresentation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	h.logError(c, err)
	c.JSON(statusForError(err), newErrorResponse(err))
}

func (h *Handler) logError(c *gin.Context, err error) {
	_ = c.Error(err)
	if statusForError(err) >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
}
