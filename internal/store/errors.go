package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a signup collides with an
	// existing account email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no account matches the email.
	ErrUserNotFound = errors.New("user not found")

	// ErrVaultRecordNotFound is returned when no record matches both the id
	// and the owner. A record owned by someone else is reported the same way.
	ErrVaultRecordNotFound = errors.New("vault record not found")

	// ErrLocalSessionNotFound is returned by the client session repository
	// when nobody has logged in on this device.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrUnknownDriver is returned when the configured storage driver is
	// neither postgres nor mongo.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
