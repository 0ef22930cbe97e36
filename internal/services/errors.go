package services

import "errors"

var (
	ErrEmptyInput          = errors.New("document is empty")
	ErrTooLarge            = errors.New("document exceeds the size limit")
	ErrUnsupportedFormat   = errors.New("unsupported document format")
	ErrDocumentParse       = errors.New("failed to parse document")
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")
)
