package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func docxFile(t *testing.T, body string) []byte {
	t.Helper()
	return zipArchive(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types/>`,
		docxBodyPart:          `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`,
	})
}

func odtFile(t *testing.T, body string) []byte {
	t.Helper()
	return zipArchive(t, map[string]string{
		"mimetype": "application/vnd.oasis.opendocument.text",
		"content.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">` +
			`<office:body><office:text>` + body + `</office:text></office:body></office:document-content>`,
	})
}

// pdfFile builds a single page document with one line of Helvetica text.
func pdfFile(text string) []byte {
	return pdfWithTrailer(text, "")
}

// pdfWithTrailer is pdfFile with extra entries in the trailer dictionary.
func pdfWithTrailer(text, trailer string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, trailer, xref)
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		filename string
		format   Format
		ok       bool
	}{
		{"cv.pdf", FormatPDF, true},
		{"CV.PDF", FormatPDF, true},
		{"job.docx", FormatDOCX, true},
		{"legacy.doc", FormatDOCX, true},
		{"offer.odt", FormatODT, true},
		{"notes.txt", "", false},
		{"no-extension", "", false},
	}

	for _, tt := range tests {
		format, ok := FormatOf(tt.filename)
		if format != tt.format || ok != tt.ok {
			t.Fatalf("FormatOf(%q): expected %q/%v, got %q/%v", tt.filename, tt.format, tt.ok, format, ok)
		}
		if Supported(tt.filename) != tt.ok {
			t.Fatalf("Supported(%q): expected %v", tt.filename, tt.ok)
		}
	}
}

func TestExtractDOCX(t *testing.T) {
	body := `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Go</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`

	text, err := Extract(docxFile(t, body), "cv.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := "Jane Doe\nSkills: Go\tSQL\nCell"
	if text != expect {
		t.Fatalf("expected %q, got %q", expect, text)
	}
}

func TestExtractODT(t *testing.T) {
	text, err := Extract(odtFile(t, `<text:p>Senior Go Engineer</text:p><text:p>Remote friendly</text:p>`), "job.odt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Senior Go Engineer") || !strings.Contains(text, "Remote friendly") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPDF(t *testing.T) {
	text, err := Extract(pdfFile("Hello from the CV"), "cv.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Hello from the CV") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractErrors(t *testing.T) {
	whole := pdfFile("Hello from the CV")
	encrypted := pdfWithTrailer("Hello from the CV",
		" /Encrypt << /Filter /Standard /V 1 /R 2"+
			" /O <"+strings.Repeat("4f", 32)+"> /U <"+strings.Repeat("55", 32)+"> /P -4 >>"+
			" /ID [<"+strings.Repeat("ab", 16)+"> <"+strings.Repeat("ab", 16)+">]")

	tests := []struct {
		name     string
		data     []byte
		filename string
		corrupt  Format
	}{
		{name: "unsupported", data: []byte("plain"), filename: "notes.txt"},
		{name: "garbage pdf", data: []byte("definitely not a pdf"), filename: "cv.pdf", corrupt: FormatPDF},
		{name: "empty pdf", data: nil, filename: "cv.pdf", corrupt: FormatPDF},
		{name: "truncated pdf", data: whole[:len(whole)/2], filename: "cv.pdf", corrupt: FormatPDF},
		{name: "encrypted pdf", data: encrypted, filename: "cv.pdf", corrupt: FormatPDF},
		{name: "garbage docx", data: []byte("PK nope"), filename: "cv.docx", corrupt: FormatDOCX},
		{name: "docx without body", data: zipArchive(t, map[string]string{"other.xml": "<x/>"}), filename: "cv.docx", corrupt: FormatDOCX},
		{name: "garbage odt", data: []byte("nope"), filename: "cv.odt", corrupt: FormatODT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, tt.filename)
			if err == nil {
				t.Fatal("expected error")
			}

			if tt.corrupt == "" {
				var unsupported *UnsupportedFormatError
				if !errors.As(err, &unsupported) || unsupported.Filename != tt.filename {
					t.Fatalf("expected unsupported format error, got %v", err)
				}
				return
			}

			var corrupt *CorruptDocumentError
			if !errors.As(err, &corrupt) {
				t.Fatalf("expected corrupt document error, got %v", err)
			}
			if corrupt.Format != tt.corrupt {
				t.Fatalf("expected format %q, got %q", tt.corrupt, corrupt.Format)
			}
		})
	}
}
