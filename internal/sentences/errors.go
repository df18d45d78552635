package sentences

import "errors"

var (
	// ErrInvalidDocument is returned when a stored or imported document is
	// not JSON or its top-level value is not an array.
	ErrInvalidDocument = errors.New("sentence document must be a JSON array")

	// ErrNoValidSentences is returned on import when the array had entries
	// but none of them carried a string "text" field.
	ErrNoValidSentences = errors.New("no valid sentences found in document")

	ErrNotFound  = errors.New("sentence not found")
	ErrEmptyText = errors.New("sentence text is required")
)
