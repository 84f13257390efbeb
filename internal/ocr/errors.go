package ocr

import "errors"

var (
	// ErrNotConfigured indicates no API key was provided.
	ErrNotConfigured = errors.New("ocr api key not configured")

	// ErrUnavailable indicates the OCR service is unreachable.
	ErrUnavailable = errors.New("ocr service unavailable")

	// ErrTimeout indicates the OCR request exceeded the configured timeout.
	ErrTimeout = errors.New("ocr request timed out")

	// ErrProcessing indicates the service accepted the image but reported
	// a processing failure.
	ErrProcessing = errors.New("ocr processing failed")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("ocr retry attempts exhausted")
)
