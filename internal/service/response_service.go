package service

// IngestRequest is what the HTTP layer hands to Telemetry.Ingest.
type IngestRequest struct {
	Body        []byte // raw request body, recorded verbatim on rejection
	ContentType string // Content-Type header as sent
}

// TelemetryOptions configures request validation.
type TelemetryOptions struct {
	// RequireContentType rejects bodies not declared as JSON before decoding them.
	RequireContentType bool
}
