package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Ingestion errors
	ErrIngestFailed    = fmt.Errorf("document ingestion failed")
	ErrDocumentMissing = fmt.Errorf("document not found")
	ErrNoTopics        = fmt.Errorf("no topics extracted from document")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrPublishFailed      = fmt.Errorf("playlist publish failed")
	ErrSnapshotNotFound   = fmt.Errorf("snapshot not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
