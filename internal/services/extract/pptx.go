package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/models"
)

// PPTX files are zip archives; slide text lives in ppt/slides/slideN.xml as
// <a:t> runs inside <a:p> paragraphs.

var (
	slideEntryPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	slideRelsPattern  = regexp.MustCompile(`^ppt/slides/_rels/slide(\d+)\.xml\.rels$`)
)

// extractPPTXText extracts per-slide text from a PowerPoint file.
func extractPPTXText(filePath string) ([]models.SlideText, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPTX archive: %w", err)
	}
	defer reader.Close()

	texts := make(map[int]string)
	for _, file := range reader.File {
		match := slideEntryPattern.FindStringSubmatch(file.Name)
		if match == nil {
			continue
		}
		slideNum, err := strconv.Atoi(match[1])
		if err != nil || slideNum < 1 {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open slide entry %s: %w", file.Name, err)
		}
		text, err := slideXMLText(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse slide entry %s: %w", file.Name, err)
		}
		texts[slideNum] = text
	}

	slideNums := make([]int, 0, len(texts))
	for num := range texts {
		slideNums = append(slideNums, num)
	}
	sort.Ints(slideNums)

	slides := make([]models.SlideText, 0, len(slideNums))
	for _, num := range slideNums {
		slides = append(slides, models.SlideText{
			SlideNumber: num,
			Text:        texts[num],
		})
	}

	return slides, nil
}

// slideXMLText walks the slide XML token stream collecting text runs.
// Paragraph ends become newlines so sentence boundaries survive extraction.
func slideXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	inTextRun := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inTextRun = false
			}
			if t.Name.Local == "p" {
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				builder.Write(t)
			}
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

// relationship is one entry of a slide's _rels part.
type relationship struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

// extractPPTXImages pulls each slide's first embedded picture, best effort.
// Slide-to-media mapping comes from the slide's _rels part.
func extractPPTXImages(filePath string, logger arbor.ILogger) map[int][]byte {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to reopen PPTX for image extraction")
		return nil
	}
	defer reader.Close()

	entries := make(map[string]*zip.File, len(reader.File))
	for _, file := range reader.File {
		entries[file.Name] = file
	}

	images := make(map[int][]byte)
	for _, file := range reader.File {
		match := slideRelsPattern.FindStringSubmatch(file.Name)
		if match == nil {
			continue
		}
		slideNum, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		target, ok := firstImageTarget(file)
		if !ok {
			continue
		}

		// Targets are relative to ppt/slides/
		mediaPath := path.Clean(path.Join("ppt/slides", target))
		mediaFile, ok := entries[mediaPath]
		if !ok {
			continue
		}

		data, err := readZipEntry(mediaFile)
		if err != nil {
			logger.Warn().Err(err).Str("entry", mediaPath).Msg("Failed to read embedded image")
			continue
		}
		images[slideNum] = data
	}

	if len(images) > 0 {
		logger.Debug().Int("slides_with_images", len(images)).Msg("Extracted PPTX images")
	}

	return images
}

func firstImageTarget(file *zip.File) (string, bool) {
	rc, err := file.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	var rels relationships
	if err := xml.NewDecoder(rc).Decode(&rels); err != nil {
		return "", false
	}

	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, "/image") {
			return rel.Target, true
		}
	}
	return "", false
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
