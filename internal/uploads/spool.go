package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cat-resume-api/internal/shared/telemetry"
	"cat-resume-api/internal/shared/util"
)

const (
	// MaxUploadBytes is the default per-file limit.
	MaxUploadBytes = 5 << 20
	mimePDF        = "application/pdf"
)

// Spool writes accepted uploads to uniquely named files under Dir.
type Spool struct {
	Dir      string
	MaxBytes int64
}

// TempFile is an accepted upload on disk. Release must be called once processing ends.
type TempFile struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
	RequestID    string
}

// NewSpool creates the upload directory if needed.
func NewSpool(dir string, maxBytes int64) (*Spool, error) {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Spool{Dir: dir, MaxBytes: maxBytes}, nil
}

// Validate checks the part headers without reading the body.
func (s *Spool) Validate(fh *multipart.FileHeader) error {
	if fh == nil {
		return ErrMissingFile
	}
	if ContentType(fh) != mimePDF {
		return ErrNotPDF
	}
	if fh.Size > s.MaxBytes {
		return ErrTooLarge
	}
	return nil
}

// Accept validates fh and copies it to a fresh file in the spool directory.
func (s *Spool) Accept(fh *multipart.FileHeader, requestID string) (*TempFile, error) {
	if err := s.Validate(fh); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.Dir, uuid.NewString()+".pdf")
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create temp upload: %w", err)
	}

	// One byte past the limit is enough to detect an oversized body whose header lied about size.
	written, copyErr := io.Copy(dst, io.LimitReader(src, s.MaxBytes+1))
	closeErr := dst.Close()
	tf := &TempFile{
		Path:         path,
		OriginalName: displayName(fh.Filename),
		ContentType:  mimePDF,
		Size:         written,
		RequestID:    requestID,
	}
	switch {
	case copyErr != nil:
		tf.Release()
		return nil, fmt.Errorf("write temp upload: %w", copyErr)
	case closeErr != nil:
		tf.Release()
		return nil, fmt.Errorf("close temp upload: %w", closeErr)
	case written > s.MaxBytes:
		tf.Release()
		return nil, ErrTooLarge
	}

	telemetry.Info("upload.accepted", map[string]any{
		"request_id": requestID,
		"file_name":  tf.OriginalName,
		"size_bytes": written,
	})
	return tf, nil
}

// Release removes the temp file. Failures are logged and never returned.
func (t *TempFile) Release() {
	if t == nil || t.Path == "" {
		return
	}
	if err := os.Remove(t.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		telemetry.Error("upload.cleanup_failed", map[string]any{
			"request_id": t.RequestID,
			"path":       t.Path,
			"error":      err,
		})
	}
}

// ContentType returns the declared media type of a multipart part, without parameters.
func ContentType(fh *multipart.FileHeader) string {
	raw := fh.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(mediaType)
}

func displayName(name string) string {
	clean, err := util.SanitizeFileName(filepath.Base(name))
	if err != nil {
		return "upload.pdf"
	}
	return clean
}
