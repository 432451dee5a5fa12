package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/interfaces"
)

// Service implements interfaces.SlideExtractor for PowerPoint and PDF files.
type Service struct {
	logger        arbor.ILogger
	extractImages bool
}

// Compile-time assertion
var _ interfaces.SlideExtractor = (*Service)(nil)

// NewService creates a new extraction service.
func NewService(cfg *common.ReviewConfig, logger arbor.ILogger) *Service {
	return &Service{
		logger:        logger,
		extractImages: cfg.ExtractImages,
	}
}

// Extract reads the file at path and returns per-slide text plus any
// per-slide images for the visual pass. The slide list may be empty;
// callers decide whether that is fatal.
func (s *Service) Extract(ctx context.Context, path string, fileName string) (*interfaces.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &interfaces.ExtractionResult{FileName: fileName}
	ext := strings.ToLower(filepath.Ext(fileName))

	switch ext {
	case ".pdf":
		slides, err := extractPDFText(path)
		if err != nil {
			return nil, fmt.Errorf("PDF extraction failed: %w", err)
		}
		result.Slides = slides
		if s.extractImages {
			result.Images = extractPDFImages(path, s.logger)
		}

	case ".pptx":
		slides, err := extractPPTXText(path)
		if err != nil {
			return nil, fmt.Errorf("PPTX extraction failed: %w", err)
		}
		result.Slides = slides
		if s.extractImages {
			result.Images = extractPPTXImages(path, s.logger)
		}

	default:
		return nil, fmt.Errorf("%w: %s", interfaces.ErrUnsupportedFileType, ext)
	}

	s.logger.Info().
		Str("file", fileName).
		Int("slides", len(result.Slides)).
		Int("images", len(result.Images)).
		Msg("Extraction complete")

	return result, nil
}
