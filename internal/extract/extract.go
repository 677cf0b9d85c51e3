package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

var (
	// ErrUnsupportedType is returned for payloads that are not PDF documents.
	ErrUnsupportedType = errors.New("unsupported mime type")
	// ErrMalformedPDF is returned when the PDF parser cannot read the document.
	ErrMalformedPDF = errors.New("malformed pdf")
)

// ExtractFile reads the file at path and extracts its text.
// Library used: github.com/ledongthuc/pdf.
func ExtractFile(ctx context.Context, path string, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract text path=%s: read: %w", path, err)
	}
	text, err := ExtractTextFromBytes(ctx, data, mimeType)
	if err != nil {
		return "", fmt.Errorf("extract text path=%s: %w", path, err)
	}
	return text, nil
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType, data)
	if normalized != mimePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	return extractPDF(data)
}

// IsPDF reports whether data carries the PDF magic header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some truncated object streams.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrMalformedPDF, rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open: %v", ErrMalformedPDF, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read text: %v", ErrMalformedPDF, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeMimeType(mimeType string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if (clean == "" || clean == "application/octet-stream") && IsPDF(data) {
		return mimePDF
	}
	return clean
}
