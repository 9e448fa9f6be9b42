// Package parser extracts plain text from uploaded CV files. PDF goes
// through the eino PDF parser, TXT is read as-is; anything else is
// rejected.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"

	"cv-match-go/internal/logger"
)

// ErrUnsupportedFormat is returned for file types the extractor does
// not handle (DOCX included).
var ErrUnsupportedFormat = errors.New("unsupported file format")

const pdfParseTimeout = 30 * time.Second

// TextExtractor turns an uploaded file into plain text, dispatching on
// the file extension.
type TextExtractor struct {
	pdfParser *pdf.PDFParser
}

// NewTextExtractor initializes the extractor. The PDF parser is built
// once and reused; ToPages is off so a document comes back as one
// continuous text.
func NewTextExtractor(ctx context.Context) (*TextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("creating PDF parser: %w", err)
	}
	return &TextExtractor{pdfParser: p}, nil
}

// Extract returns the plain text of an uploaded file. The filename
// decides the format: .pdf is parsed, .txt is read raw, everything
// else is ErrUnsupportedFormat.
func (e *TextExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(ctx, filename, data)
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func (e *TextExtractor) extractPDF(ctx context.Context, filename string, data []byte) (string, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, pdfParseTimeout)
	defer cancel()

	docs, err := e.pdfParser.Parse(ctx, bytes.NewReader(data),
		einoparser.WithURI(filename),
		einoparser.WithExtraMeta(map[string]interface{}{
			"source_file": filename,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("parsing PDF %s: %w", filename, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("PDF parser returned no content for %s", filename)
	}

	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(doc.Content)
	}

	logger.Debug().
		Str("file", filename).
		Int("chars", sb.Len()).
		Dur("duration", time.Since(start)).
		Msg("PDF text extracted")

	return sb.String(), nil
}

// ExtractFromReader is a convenience for callers holding a stream.
func (e *TextExtractor) ExtractFromReader(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading upload %s: %w", filename, err)
	}
	return e.Extract(ctx, filename, data)
}
