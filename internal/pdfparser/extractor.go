package pdfparser

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor defines the interface for extracting text lines from PDF files.
// This interface allows for dependency injection and makes the PDF parser testable
// by providing different implementations for production and testing.
type PDFExtractor interface {
	// ExtractLines returns the text lines of every page, top to bottom, pages
	// in order. Lines are trimmed and never empty.
	ExtractLines(data []byte) ([]string, error)
}

// LedongthucExtractor implements PDFExtractor with github.com/ledongthuc/pdf.
// It rebuilds lines from glyph positions instead of relying on the content
// stream order.
type LedongthucExtractor struct {
	// YTolerance is the maximum baseline difference, in points, between glyphs
	// of the same line.
	YTolerance float64
}

// NewLedongthucExtractor creates an extractor with DefaultYTolerance.
func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{YTolerance: DefaultYTolerance}
}

// ExtractLines parses the document held in data.
func (e *LedongthucExtractor) ExtractLines(data []byte) (lines []string, err error) {
	// The library panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		fragments := make([]Fragment, 0, len(texts))
		for _, t := range texts {
			fragments = append(fragments, Fragment{
				X:        t.X,
				Y:        t.Y,
				W:        t.W,
				FontSize: t.FontSize,
				S:        t.S,
			})
		}
		lines = append(lines, AssembleLines(fragments, e.YTolerance)...)
	}
	return lines, nil
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined mock data instead of actually extracting from PDF files.
// It is safe for concurrent use; read Calls once the conversions are done.
type MockPDFExtractor struct {
	MockLines []string
	MockErr   error
	Calls     int

	mu sync.Mutex
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockLines []string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockLines: mockLines,
		MockErr:   mockErr,
	}
}

// ExtractLines returns the predefined mock lines or error.
func (e *MockPDFExtractor) ExtractLines(data []byte) ([]string, error) {
	e.mu.Lock()
	e.Calls++
	e.mu.Unlock()
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockLines, nil
}
