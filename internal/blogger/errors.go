package blogger

import "errors"

// Sentinel errors for the import request lifecycle. The first four are
// fatal to the whole request before any row is processed; per-row
// persistence failures are captured into the result's error list
// instead of being returned.
var (
	// ErrUnauthorized means no credential was presented or it failed
	// verification.
	ErrUnauthorized = errors.New("authorization required")

	// ErrForbidden means the credential is valid but the user's stored
	// role is not admin.
	ErrForbidden = errors.New("admin access required")

	// ErrInvalidSource means the spreadsheet URL carries no
	// recognizable document identifier.
	ErrInvalidSource = errors.New("invalid Google Sheets URL")

	// ErrFetch means the spreadsheet export request did not succeed.
	ErrFetch = errors.New("failed to fetch Google Sheets data")

	// ErrNoSource means the request carried neither a sheet URL nor
	// raw CSV data.
	ErrNoSource = errors.New("either googleSheetsUrl or csvData must be provided")

	// ErrNotFound means the requested creator or profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingFields means a hand-entered record lacks the required
	// name or handle.
	ErrMissingFields = errors.New("name and handle are required")

	// ErrHandleTaken means a creator with the normalized handle
	// already exists.
	ErrHandleTaken = errors.New("handle already exists")
)
