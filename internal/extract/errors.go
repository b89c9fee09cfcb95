package extract

import "errors"

// Sentinel errors for the extract package. Check with errors.Is.
var (
	ErrUnsupportedFormat     = errors.New("extract: unsupported document format")
	ErrEmptyDocument         = errors.New("extract: document contains no usable lines")
	ErrExtractionUnavailable = errors.New("extract: all extraction modes disabled")
)
