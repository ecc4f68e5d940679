// Package extract turns uploaded source documents into plain text.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for text extraction.
var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrExtractionFailed  = errors.New("text extraction failed")
)

// Format is a supported source document kind.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// ParseFormat maps a declared file extension (".PDF", "docx", ...) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".") {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt":
		return FormatTXT, nil
	}
	return "", fmt.Errorf("%w: %q (allowed: .pdf, .docx, .txt)", ErrUnsupportedFormat, ext)
}

// Extractor converts document bytes into text. It never touches the filesystem.
type Extractor struct {
	pdf []PDFBackend
}

// New creates an Extractor. PDF backends are tried in the given order;
// with none given, the default reader and page-walk backends are used.
func New(pdfBackends ...PDFBackend) *Extractor {
	if len(pdfBackends) == 0 {
		pdfBackends = DefaultPDFBackends()
	}
	return &Extractor{pdf: pdfBackends}
}

// Extract returns the plain text of data, interpreted according to ext.
func (e *Extractor) Extract(data []byte, ext string) (string, error) {
	format, err := ParseFormat(ext)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatPDF:
		return e.extractPDF(data)
	case FormatDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
		}
		return text, nil
	default:
		return decodeUTF8(data), nil
	}
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	if len(e.pdf) == 0 {
		return "", fmt.Errorf("%w: no pdf parser is configured", ErrExtractionFailed)
	}

	var errs []error
	for _, backend := range e.pdf {
		text, err := backend.ExtractText(data)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
	}
	return "", fmt.Errorf("%w: failed to parse PDF: %v", ErrExtractionFailed, errors.Join(errs...))
}

func decodeUTF8(data []byte) string {
	data = trimBOM(data)
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
