package jobapplications

import "errors"

var (
	// ErrNotFound indicates no application exists for the given ID.
	ErrNotFound = errors.New("job application not found")

	// ErrInvalidID indicates a malformed document identifier.
	ErrInvalidID = errors.New("invalid job application id")

	// ErrInvalidStatus indicates a status outside the enumeration.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidSort indicates a sort field outside the allow-list.
	ErrInvalidSort = errors.New("invalid sort field")

	// ErrInvalidSortOrder indicates a sort order other than asc or desc.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)
