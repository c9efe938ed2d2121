package domain

import "errors"

var (
	// ErrNotFound is returned when no eatery has the requested id.
	ErrNotFound = errors.New("eatery not found")

	// ErrMalformedRecord marks a blob that is not a valid eatery document.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrSourceUnavailable means the blob source itself could not be enumerated.
	ErrSourceUnavailable = errors.New("blob source unavailable")
)
