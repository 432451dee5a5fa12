package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/models"
)

// extractPDFText extracts per-page plain text. Pages that yield no text are
// kept with empty text so page numbering stays aligned with the document.
func extractPDFText(path string) ([]models.SlideText, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	slides := make([]models.SlideText, 0, totalPages)

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		slides = append(slides, models.SlideText{
			SlideNumber: i,
			Text:        strings.TrimSpace(text),
		})
	}

	return slides, nil
}

// extractedImagePattern matches pdfcpu's extracted image file naming, which
// embeds the 1-based page number.
var extractedImagePattern = regexp.MustCompile(`_(?:page_)?(\d+)_`)

// extractPDFImages pulls embedded images out of the PDF per page, best
// effort. Full-page rendering belongs to an external renderer; embedded
// images are what the visual pass gets in-process. A failure here disables
// the visual pass for the file, never the run.
func extractPDFImages(path string, logger arbor.ILogger) map[int][]byte {
	outDir, err := os.MkdirTemp("", "deckcheck-images-")
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create image extraction directory, skipping visual pass input")
		return nil
	}
	defer os.RemoveAll(outDir)

	conf := pdfcpumodel.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, outDir, nil, conf); err != nil {
		logger.Warn().Err(err).Msg("PDF image extraction failed, skipping visual pass input")
		return nil
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read extracted images")
		return nil
	}

	// Take the first (largest) image per page
	type candidate struct {
		name string
		size int64
	}
	perPage := make(map[int]candidate)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := extractedImagePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		pageNum, err := strconv.Atoi(match[1])
		if err != nil || pageNum < 1 {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if existing, ok := perPage[pageNum]; !ok || info.Size() > existing.size {
			perPage[pageNum] = candidate{name: entry.Name(), size: info.Size()}
		}
	}

	images := make(map[int][]byte, len(perPage))
	for pageNum, cand := range perPage {
		data, err := os.ReadFile(filepath.Join(outDir, cand.name))
		if err != nil {
			logger.Warn().Err(err).Str("file", cand.name).Msg("Failed to read extracted image")
			continue
		}
		images[pageNum] = data
	}

	if len(images) > 0 {
		logger.Debug().Int("pages_with_images", len(images)).Msg("Extracted PDF images")
	}

	return images
}
