package service

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/types"
)

const (
	// Pages past this cap are silently ignored; documented truncation.
	maxPDFPages = 50

	// Extracted text shorter than this (after trimming) counts as empty.
	minDocumentChars = 10
)

// ExtractService converts uploaded documents into plain text. Every failure
// is returned as a *types.ExtractionError value so the router can surface
// the diagnostic to the user without unwinding the request.
type ExtractService struct {
	logger *zap.Logger
}

func NewExtractService(logger *zap.Logger) *ExtractService {
	return &ExtractService{logger: logger}
}

// Extract dispatches on the declared mime type, falling back to the file
// extension the way browsers sometimes require.
func (s *ExtractService) Extract(name, mimeType string, data []byte) (string, error) {
	lowerName := strings.ToLower(name)

	var (
		text string
		err  error
	)
	switch {
	case mimeType == "application/pdf" || strings.HasSuffix(lowerName, ".pdf"):
		text, err = s.extractPDF(data)
	case mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		strings.HasSuffix(lowerName, ".docx"):
		text, err = s.extractDOCX(data)
	case mimeType == "text/plain" || strings.HasSuffix(lowerName, ".txt"):
		text = extractPlainText(data)
	default:
		return "", &types.ExtractionError{
			Kind:    types.ExtractionUnsupported,
			Message: fmt.Sprintf("Unsupported file type - %s", mimeType),
		}
	}
	if err != nil {
		return "", err
	}

	if len(strings.TrimSpace(text)) < minDocumentChars {
		return "", &types.ExtractionError{
			Kind:    types.ExtractionEmpty,
			Message: "Document appears to be empty or unreadable",
		}
	}

	s.logger.Debug("extracted document text",
		zap.String("name", name),
		zap.Int("chars", len(text)))
	return text, nil
}

// extractPDF concatenates per-page text for up to maxPDFPages pages. Pages
// that fail to decode are skipped rather than failing the whole document.
func (s *ExtractService) extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = &types.ExtractionError{
				Kind:    types.ExtractionCorrupt,
				Message: fmt.Sprintf("Could not read PDF - %v", r),
			}
		}
	}()

	reader, rerr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if rerr != nil {
		return "", &types.ExtractionError{
			Kind:    types.ExtractionCorrupt,
			Message: fmt.Sprintf("Could not read PDF - %v", rerr),
		}
	}

	numPages := reader.NumPage()
	if numPages > maxPDFPages {
		numPages = maxPDFPages
	}

	parts := make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			s.logger.Warn("failed to extract pdf page",
				zap.Int("page", pageNum), zap.Error(perr))
			continue
		}
		parts = append(parts, pageText)
	}

	return strings.Join(parts, "\n"), nil
}

// extractDOCX concatenates the non-empty paragraphs of the document body.
func (s *ExtractService) extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &types.ExtractionError{
			Kind:    types.ExtractionCorrupt,
			Message: fmt.Sprintf("Could not read DOCX - %v", err),
		}
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := paragraph.String(); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// extractPlainText decodes UTF-8, falling back to Latin-1 where every byte
// maps to the code point of the same value. It never fails.
func extractPlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
