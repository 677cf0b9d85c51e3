package resumes

import "errors"

var ErrNotFound = errors.New("not found")
