package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeNoSelection    = "no_selection"

	// Session errors
	ErrCodeNotAwaiting     = "not_awaiting"
	ErrCodeNoQuestion      = "no_question"
	ErrCodeSessionClosed   = "session_closed"
	ErrCodeDataUnavailable = "data_unavailable"

	// WebSocket errors
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
