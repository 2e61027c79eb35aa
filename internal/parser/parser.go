package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrUnparseable marks a document whose extraction produced no usable text.
// Callers detect it with errors.Is and must never score such a document.
var ErrUnparseable = errors.New("unparseable document")

// ErrUnsupportedType marks a file extension outside pdf/txt.
var ErrUnsupportedType = errors.New("unsupported file type")

type DocumentParser interface {
	ExtractText(filePath string) (string, error)
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// ExtractText dispatches on the file extension and returns normalized text.
func (p *documentParser) ExtractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return p.extractFromPDF(filePath)
	case ".txt":
		return p.extractFromTxt(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(filePath))
	}
}

func (p *documentParser) extractFromPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page should not sink the whole document.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	cleaned := CleanText(textBuilder.String())
	if cleaned == "" {
		return "", fmt.Errorf("%s: %w", filepath.Base(filePath), ErrUnparseable)
	}

	return cleaned, nil
}

func (p *documentParser) extractFromTxt(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	// Tolerate non-UTF-8 uploads instead of failing the document.
	cleaned := CleanText(strings.ToValidUTF8(string(data), " "))
	if cleaned == "" {
		return "", fmt.Errorf("%s: %w", filepath.Base(filePath), ErrUnparseable)
	}

	return cleaned, nil
}

// CleanText collapses all whitespace runs to single spaces and strips control
// characters so downstream matching sees one normalized string.
func CleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}
