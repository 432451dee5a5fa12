package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/deckcheck/internal/models"
)

// ErrUnsupportedFileType is returned when the upload is neither a .pptx nor
// a .pdf file.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ExtractionResult carries everything the extraction service pulled out of
// one uploaded file. Images is keyed by slide number; not every slide has a
// rendered image (image extraction may be partial or disabled).
type ExtractionResult struct {
	FileName string
	Slides   []models.SlideText
	Images   map[int][]byte
}

// SlideExtractor turns an uploaded presentation file into per-slide text and
// optional per-slide images.
type SlideExtractor interface {
	// Extract reads the file at path and returns per-slide content. The
	// returned slide list is in document order. An empty slide list is not
	// an error here; callers decide whether that is fatal.
	Extract(ctx context.Context, path string, fileName string) (*ExtractionResult, error)
}
