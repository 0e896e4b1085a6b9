package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("file is empty")
	ErrAIUnavailable       = errors.New("AI extraction is not configured; set an AI provider API key")
	ErrExtractionFailed    = errors.New("could not extract vendor data from file")
	ErrInsufficientText    = errors.New("extracted text is too short to be useful")
	ErrNoVendorsFound      = errors.New("no vendors found in file")
	ErrDuplicateVendor     = errors.New("vendor with this name already exists")
	ErrInvalidVendor       = errors.New("vendor record is invalid")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
