package ats

import "errors"

var (
	// ErrNotFound indicates no analysis exists for the given ID.
	ErrNotFound = errors.New("ATS analysis not found")

	// ErrInvalidID indicates a malformed document identifier.
	ErrInvalidID = errors.New("invalid analysis id")

	// ErrInvalidResponse indicates the provider returned text that is not
	// valid JSON. The raw text is carried in the wrapping error for diagnosis.
	ErrInvalidResponse = errors.New("LLM returned invalid JSON")

	// ErrValidation indicates the provider's JSON is missing or mistypes an
	// expected field.
	ErrValidation = errors.New("data validation failed")

	// ErrNoProvider indicates the analysis provider is not configured.
	ErrNoProvider = errors.New("analysis provider is not configured")
)
