package errs

// Categories shared across layers. Mark concrete failures with one of these so
// handlers can fall back to a status code without knowing every sentinel.
// Never Mark a sentinel with another sentinel: Is would treat them as equal.
var (
	ErrValidation      = New("validation failed")
	ErrNotFound        = New("not found")
	ErrConflict        = New("conflict")
	ErrExternalService = New("external service failure")
)
