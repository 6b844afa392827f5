package analysis

// ValidationReason identifies which shape constraint the symptom text broke.
type ValidationReason string

const (
	// ReasonEmpty means the trimmed input had zero length.
	ReasonEmpty ValidationReason = "empty"
	// ReasonTooShort means the trimmed input was under the minimum length.
	ReasonTooShort ValidationReason = "too_short"
	// ReasonTooLong means the input exceeded the configured maximum length.
	ReasonTooLong ValidationReason = "too_long"
)

// ValidationError represents a rejected symptom input. The message is safe to
// return to the end user verbatim.
type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorKind classifies a failed analysis for the caller. Provider failure
// kinds pass through from the completion client unchanged.
type ErrorKind string

const (
	ErrKindNone        ErrorKind = ""
	ErrKindValidation  ErrorKind = "validation_error"
	ErrKindTimeout     ErrorKind = "timeout"
	ErrKindNetwork     ErrorKind = "network_error"
	ErrKindAuth        ErrorKind = "auth_error"
	ErrKindRateLimited ErrorKind = "rate_limit"
	ErrKindAPI         ErrorKind = "api_error"
)
