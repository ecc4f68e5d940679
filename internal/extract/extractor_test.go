package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

type fakePDF struct {
	name  string
	text  string
	err   error
	calls *[]string
}

func (f fakePDF) Name() string { return f.name }

func (f fakePDF) ExtractText([]byte) (string, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	return f.text, f.err
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{".pdf", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{".Docx", FormatDOCX, false},
		{"txt", FormatTXT, false},
		{".png", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestExtract_TXT(t *testing.T) {
	e := New()
	text, err := e.Extract([]byte("\xEF\xBB\xBF1. What is 2+2?\nA) 3\nB) 4"), ".txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "1. What is 2+2?") {
		t.Errorf("BOM not stripped: %q", text)
	}
}

func TestExtract_TXTInvalidUTF8(t *testing.T) {
	text, err := New().Extract([]byte("abc\xffdef"), "txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "abc�def" {
		t.Errorf("got %q", text)
	}
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := New().Extract([]byte("whatever"), ".png")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_DOCX(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>1. Define photosynthesis.</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">2. Name the </w:t></w:r><w:r><w:t>green pigment.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := New().Extract(buildDOCX(t, doc), ".docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1. Define photosynthesis.\n2. Name the green pigment.\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestExtract_DOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/styles.xml"); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	_, err := New().Extract(buf.Bytes(), ".docx")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_DOCXNotZip(t *testing.T) {
	_, err := New().Extract([]byte("plain text pretending to be docx"), ".docx")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_PDFBackendFallback(t *testing.T) {
	var calls []string
	e := New(
		fakePDF{name: "first", err: errors.New("boom"), calls: &calls},
		fakePDF{name: "second", text: "recovered text", calls: &calls},
		fakePDF{name: "third", text: "never used", calls: &calls},
	)

	text, err := e.Extract([]byte("%PDF-1.4"), ".pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "recovered text" {
		t.Errorf("got %q", text)
	}
	if strings.Join(calls, ",") != "first,second" {
		t.Errorf("backend order = %v", calls)
	}
}

func TestExtract_PDFAllBackendsFail(t *testing.T) {
	e := New(
		fakePDF{name: "first", err: errors.New("bad xref")},
		fakePDF{name: "second", err: errors.New("no pages")},
	)
	_, err := e.Extract([]byte("junk"), ".pdf")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to parse PDF") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestCallablePDF_NilFunc(t *testing.T) {
	_, err := CallablePDF{}.ExtractText([]byte("x"))
	if err == nil {
		t.Fatal("expected error for uninitialized parser")
	}
}

func TestCallablePDF_RecoversPanic(t *testing.T) {
	c := CallablePDF{Label: "panicky", Fn: func([]byte) (PDFResult, error) {
		panic("corrupt stream")
	}}
	_, err := c.ExtractText([]byte("x"))
	if err == nil || !strings.Contains(err.Error(), "corrupt stream") {
		t.Fatalf("expected recovered panic error, got %v", err)
	}
}

func TestDefaultPDFBackends_GarbageInput(t *testing.T) {
	_, err := New().Extract([]byte("this is not a pdf"), ".pdf")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}
