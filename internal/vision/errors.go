package vision

import "fmt"

// FailureKind classifies a generation failure by which contract boundary it
// belongs to, so the HTTP layer can map it without string matching.
type FailureKind int

const (
	// FailValidation is bad or missing caller input, detected before any I/O.
	FailValidation FailureKind = iota
	// FailConfig is a deployment misconfiguration (no upstream credential).
	FailConfig
	// FailNormalization means the source image could not be fetched or decoded.
	FailNormalization
	// FailUpstream means the generation call returned nothing usable.
	FailUpstream
)

// Error wraps an underlying failure with its kind. The wrapped message is
// surfaced to callers verbatim as the human-readable detail.
type Error struct {
	Kind FailureKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FetchError reports a failed remote image fetch, carrying the remote status.
type FetchError struct {
	Status     int
	StatusText string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch image: %s", e.StatusText)
}
