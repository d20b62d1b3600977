// Package errs provides the typed errors shared by the order service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or not allowed
//   - ValueIsOutOfRangeError: a value lies outside its permitted bounds
//   - ObjectNotFoundError: an object cannot be found
//   - ObjectAlreadyExistsError: an object with the same identity already exists
//   - VersionIsInvalidError: an optimistic concurrency check failed
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter maps the sentinels onto status codes: not found to 404,
// version conflicts to 409 and the value errors to 422.
package errs
