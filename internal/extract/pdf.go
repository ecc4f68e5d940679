package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// PDFBackend is one way of getting text out of a PDF.
type PDFBackend interface {
	Name() string
	ExtractText(data []byte) (string, error)
}

// PDFResult is what a callable PDF parser hands back.
type PDFResult struct {
	Text  string
	Pages int
}

// PDFFunc is a bare parsing function. CallablePDF adapts it to PDFBackend.
type PDFFunc func(data []byte) (PDFResult, error)

// DefaultPDFBackends returns the document-level reader first and the
// page-walking callable second.
func DefaultPDFBackends() []PDFBackend {
	return []PDFBackend{ReaderPDF{}, CallablePDF{Label: "pages", Fn: parsePDFPages}}
}

// ReaderPDF extracts text with a single GetPlainText pass over the document.
type ReaderPDF struct{}

func (ReaderPDF) Name() string { return "reader" }

func (ReaderPDF) ExtractText(data []byte) (text string, err error) {
	defer recoverPDF(&err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

// CallablePDF adapts a PDFFunc.
type CallablePDF struct {
	Label string
	Fn    PDFFunc
}

func (c CallablePDF) Name() string {
	if c.Label == "" {
		return "callable"
	}
	return c.Label
}

func (c CallablePDF) ExtractText(data []byte) (text string, err error) {
	if c.Fn == nil {
		return "", fmt.Errorf("pdf parser is not correctly initialized")
	}
	defer recoverPDF(&err)

	res, err := c.Fn(data)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// parsePDFPages walks pages one by one, skipping pages that fail to decode.
func parsePDFPages(data []byte) (PDFResult, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return PDFResult{}, fmt.Errorf("pdf reader: %w", err)
	}

	n := r.NumPage()
	var sb strings.Builder
	var lastErr error
	decoded := 0
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			lastErr = err
			continue
		}
		decoded++
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	if decoded == 0 && lastErr != nil {
		return PDFResult{}, fmt.Errorf("pdf pages: %w", lastErr)
	}
	return PDFResult{Text: sb.String(), Pages: n}, nil
}

// recoverPDF converts a panic from the PDF decoder into an error.
func recoverPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf decoder panic: %v", r)
	}
}
