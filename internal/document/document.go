// Package document converts uploaded PDF and word-processor files into plain text.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document container.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatODT  Format = "odt"
)

var extensions = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	// Legacy .doc uploads are opened as Office Open XML packages.
	".doc": FormatDOCX,
	".odt": FormatODT,
}

// UnsupportedFormatError is returned for file extensions that cannot be extracted.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Filename)
}

// CorruptDocumentError is returned when the binary cannot be parsed.
type CorruptDocumentError struct {
	Format Format
	Err    error
}

func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Err
}

// FormatOf returns the format registered for the filename extension.
func FormatOf(filename string) (Format, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(filename))]
	return format, ok
}

// Supported reports whether Extract accepts the filename.
func Supported(filename string) bool {
	_, ok := FormatOf(filename)
	return ok
}

// Extract returns the plain text of data, choosing the parser by the filename extension.
// Text is returned as found in the document; no case or whitespace normalisation is applied.
func Extract(data []byte, filename string) (string, error) {
	format, ok := FormatOf(filename)
	if !ok {
		return "", &UnsupportedFormatError{Filename: filename}
	}

	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatODT:
		text, err = extractODT(data)
	}

	if err != nil {
		return "", &CorruptDocumentError{Format: format, Err: err}
	}

	return text, nil
}
