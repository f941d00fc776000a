package model

import "errors"

var (
	// ErrMissingConfig is returned when a required environment value is not set
	ErrMissingConfig = errors.New("missing configuration")
	// ErrUnknownProvider is returned for provider switches with an unsupported value
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrPDFNotFound is returned when the PDF path does not exist
	ErrPDFNotFound = errors.New("pdf file not found")
	// ErrNothingToIngest signals that the document produced no chunks. It is not a failure.
	ErrNothingToIngest = errors.New("no documents to process")
)
