package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrInsufficientData   = fmt.Errorf("insufficient data for recommendations")
	ErrImportFailed       = fmt.Errorf("import failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidRating   = fmt.Errorf("rating must be between 0 and 10 in half-point steps")
	ErrNotCSV          = fmt.Errorf("file must be a CSV")
	ErrFileTooLarge    = fmt.Errorf("file exceeds maximum upload size")
)
