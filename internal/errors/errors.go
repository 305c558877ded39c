package errors

// ErrValidation reports a row-level validation failure during ingestion.
// Rows that fail validation are skipped and reported; they never abort
// the surrounding batch.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrUnauthorized is returned when the sync credential does not match the
// pre-shared secret. No rows are examined before this check.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrBadRequest is returned for a structurally invalid request, e.g. an
// empty sync batch.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return e.Message
}

// ErrStorage wraps a database-level failure. The whole batch transaction
// is rolled back when one occurs.
type ErrStorage struct {
	Err error
}

func (e *ErrStorage) Error() string {
	return "storage: " + e.Err.Error()
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}

// ErrRateLimited is returned when a client exceeds its request ceiling.
// The call has no side effects and can be retried later.
type ErrRateLimited struct {
	Message string
}

func (e *ErrRateLimited) Error() string {
	return e.Message
}
