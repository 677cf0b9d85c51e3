package uploads

import (
	"errors"
	"fmt"
)

// ErrInvalidUpload is wrapped by every rejection that should surface as a 400.
var ErrInvalidUpload = errors.New("invalid upload")

var (
	ErrMissingFile = fmt.Errorf("%w: no file uploaded", ErrInvalidUpload)
	ErrNotPDF      = fmt.Errorf("%w: only PDF files are allowed", ErrInvalidUpload)
	ErrTooLarge    = fmt.Errorf("%w: file exceeds size limit", ErrInvalidUpload)
)
