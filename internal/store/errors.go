package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLetterNotFound is returned when a query targets a letter that does
	// not exist in the database.
	ErrLetterNotFound = errors.New("letter was not found")

	// ErrLetterAlreadySigned is returned when an update, delete or sign
	// attempt targets a letter that has already left draft state. For
	// concurrent sign attempts this is how the losing request learns the
	// race is over.
	ErrLetterAlreadySigned = errors.New("letter is already signed")

	// ErrLetterNumberExists is returned when creating a letter with a
	// letter number that is already taken.
	ErrLetterNumberExists = errors.New("letter number already exists")

	// ErrSignatureNotFound is returned when a signed letter's signature
	// record cannot be located. Seeing this for a signed letter means the
	// store's atomicity guarantee was violated.
	ErrSignatureNotFound = errors.New("signature was not found")

	// ErrUserNotFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when a create or update collides
	// with another account's email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrEventNotFound is returned when a query targets an event that does
	// not exist in the database.
	ErrEventNotFound = errors.New("event was not found")

	// ErrClaimNotFound is returned when a verification lookup targets a
	// certificate claim that does not exist.
	ErrClaimNotFound = errors.New("certificate claim was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read-only query
	// against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
