package types

import "errors"

// Domain errors shared across the chunking pipeline
var (
	// ErrInvalidInput indicates the document text is not usable (not valid
	// UTF-8, or larger than the configured maximum)
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenization indicates the token counter failed or returned an
	// invalid count for some text fragment
	ErrTokenization = errors.New("tokenization failed")

	// ErrConfiguration indicates a missing or non-convergent section config
	ErrConfiguration = errors.New("invalid section configuration")

	// ErrInvalidLabel indicates an unrecognized section label
	ErrInvalidLabel = errors.New("invalid section label")
)
