package llm

import "fmt"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest holds everything needed for one chat completion call.
// All fields are supplied by the caller; the client adds nothing of its own
// except the default model when Model is empty.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// FailureKind classifies why a completion call failed.
type FailureKind string

const (
	// FailureTimeout means no response arrived within the configured bound.
	FailureTimeout FailureKind = "timeout"
	// FailureNetwork covers connection, DNS, and TLS failures.
	FailureNetwork FailureKind = "network_error"
	// FailureAuth means the provider rejected the credential (401/403).
	FailureAuth FailureKind = "auth_error"
	// FailureRateLimited means the provider returned 429.
	FailureRateLimited FailureKind = "rate_limit"
	// FailureAPI covers any other non-200 status or a malformed response body.
	FailureAPI FailureKind = "api_error"
)

// Failure describes a failed completion call.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Outcome is the discriminated result of a completion call. Exactly one of
// the success fields or Err is populated.
type Outcome struct {
	Text       string
	TokensUsed int
	Err        *Failure
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

func success(text string, tokens int) Outcome {
	return Outcome{Text: text, TokensUsed: tokens}
}

func failure(kind FailureKind, format string, args ...any) Outcome {
	return Outcome{Err: &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}
