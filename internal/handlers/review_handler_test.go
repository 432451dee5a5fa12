package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/models"
)

type stubExtractor struct {
	result *interfaces.ExtractionResult
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, path, fileName string) (*interfaces.ExtractionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := *s.result
	result.FileName = fileName
	return &result, nil
}

type stubReviewService struct {
	report *models.ReviewReport
	err    error
}

func (s *stubReviewService) Run(ctx context.Context, slides []models.SlideText, images map[int][]byte, fileName string) (*models.ReviewReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func newTestReviewHandler(extractor interfaces.SlideExtractor, reviewService interfaces.ReviewService) *ReviewHandler {
	return NewReviewHandler(extractor, reviewService, 10, common.GetLogger())
}

func TestReviewHandler_HappyPath(t *testing.T) {
	extractor := &stubExtractor{result: &interfaces.ExtractionResult{
		Slides: []models.SlideText{{SlideNumber: 1, Text: "Teh team were great."}},
	}}
	review := &stubReviewService{report: &models.ReviewReport{
		FileName:    "deck.pptx",
		TotalSlides: 1,
		Summary:     models.ReviewSummary{TotalFindings: 2, OverallScore: 90},
	}}
	handler := newTestReviewHandler(extractor, review)

	body, contentType := multipartUpload(t, "file", "deck.pptx", []byte("fake pptx bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool                `json:"success"`
		Data    models.ReviewReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "deck.pptx", response.Data.FileName)
	assert.Equal(t, 90, response.Data.Summary.OverallScore)
}

func TestReviewHandler_RejectsNonPost(t *testing.T) {
	handler := newTestReviewHandler(&stubExtractor{}, &stubReviewService{})

	req := httptest.NewRequest(http.MethodGet, "/api/review", nil)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReviewHandler_NoFile(t *testing.T) {
	handler := newTestReviewHandler(&stubExtractor{}, &stubReviewService{})

	body, contentType := multipartUpload(t, "wrongfield", "deck.pptx", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file provided")
}

func TestReviewHandler_UnsupportedExtension(t *testing.T) {
	handler := newTestReviewHandler(&stubExtractor{}, &stubReviewService{})

	body, contentType := multipartUpload(t, "file", "report.docx", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unsupported file type")
}

func TestReviewHandler_NoTextContent(t *testing.T) {
	extractor := &stubExtractor{result: &interfaces.ExtractionResult{
		Slides: []models.SlideText{{SlideNumber: 1, Text: "   "}, {SlideNumber: 2, Text: ""}},
	}}
	handler := newTestReviewHandler(extractor, &stubReviewService{})

	body, contentType := multipartUpload(t, "file", "deck.pdf", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No text content found")
}

func TestReviewHandler_CorruptFile(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("unexpected EOF")}
	handler := newTestReviewHandler(extractor, &stubReviewService{})

	body, contentType := multipartUpload(t, "file", "deck.pptx", []byte("not a zip"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "may be corrupt")
}

func TestReviewHandler_AnalysisFailure(t *testing.T) {
	extractor := &stubExtractor{result: &interfaces.ExtractionResult{
		Slides: []models.SlideText{{SlideNumber: 1, Text: "content"}},
	}}
	review := &stubReviewService{err: errors.New("no slides to analyze")}
	handler := newTestReviewHandler(extractor, review)

	body, contentType := multipartUpload(t, "file", "deck.pptx", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/review", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ReviewHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
