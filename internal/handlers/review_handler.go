package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/interfaces"
)

// ReviewHandler handles presentation upload and review requests
type ReviewHandler struct {
	extractor      interfaces.SlideExtractor
	reviewService  interfaces.ReviewService
	logger         arbor.ILogger
	maxUploadBytes int64
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(
	extractor interfaces.SlideExtractor,
	reviewService interfaces.ReviewService,
	maxUploadMB int,
	logger arbor.ILogger,
) *ReviewHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}
	return &ReviewHandler{
		extractor:      extractor,
		reviewService:  reviewService,
		logger:         logger,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// ReviewHandler handles POST /api/review requests: multipart upload of a
// .pptx or .pdf file, full pipeline run, JSON report response.
func (h *ReviewHandler) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart upload")
		WriteError(w, http.StatusBadRequest, "Invalid or oversized upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pptx" && ext != ".pdf" {
		WriteError(w, http.StatusBadRequest, "Unsupported file type. Please upload a .pptx or .pdf file.")
		return
	}

	h.logger.Info().
		Str("file", fileName).
		Int64("size", header.Size).
		Msg("Processing review upload")

	// Spool to a temp file for the extraction service; released on every
	// exit path.
	tempPath, cleanup, err := spoolUpload(file, ext)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to spool upload to temp file")
		WriteError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}
	defer cleanup()

	extraction, err := h.extractor.Extract(r.Context(), tempPath, fileName)
	if err != nil {
		if errors.Is(err, interfaces.ErrUnsupportedFileType) {
			WriteError(w, http.StatusBadRequest, "Unsupported file type. Please upload a .pptx or .pdf file.")
			return
		}
		h.logger.Error().Err(err).Str("file", fileName).Msg("Extraction failed")
		WriteError(w, http.StatusBadRequest, "Could not read the uploaded file. It may be corrupt.")
		return
	}

	if !hasAnyText(extraction) {
		WriteError(w, http.StatusBadRequest, "No text content found in the file")
		return
	}

	report, err := h.reviewService.Run(r.Context(), extraction.Slides, extraction.Images, fileName)
	if err != nil {
		h.logger.Error().Err(err).Str("file", fileName).Msg("Review run failed")
		WriteError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	WriteData(w, report)
}

// hasAnyText reports whether extraction produced at least one slide with
// non-empty text. Extractors keep empty pages for numbering, so slide count
// alone is not enough.
func hasAnyText(extraction *interfaces.ExtractionResult) bool {
	for _, slide := range extraction.Slides {
		if strings.TrimSpace(slide.Text) != "" {
			return true
		}
	}
	return false
}

func spoolUpload(file io.Reader, ext string) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "deckcheck-upload-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	cleanup := func() { os.Remove(tempFile.Name()) }

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	return tempFile.Name(), cleanup, nil
}
