package resumes

import "errors"

var (
	// ErrNotFound indicates no resume exists for the given ID.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidID indicates a malformed document identifier.
	ErrInvalidID = errors.New("invalid resume id")

	// ErrAlreadyExists indicates the user already has a resume.
	ErrAlreadyExists = errors.New("resume for this user already exists")

	// ErrInvalidSort indicates a sort field outside the allow-list.
	ErrInvalidSort = errors.New("invalid sort field")

	// ErrInvalidSortOrder indicates a sort order other than asc or desc.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)
