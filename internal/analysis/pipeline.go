package analysis

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks symptom-checker/internal/analysis CompletionClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks -mock_names=Service=MockService symptom-checker/internal/analysis Service

import (
	"context"
	"errors"
	"strings"

	"symptom-checker/internal/contextutil"
	"symptom-checker/internal/llm"
)

// CompletionClient is the outbound seam of the pipeline, defined from the
// consumer's perspective so tests can substitute a mock provider.
type CompletionClient interface {
	// Complete performs exactly one completion call and classifies the result.
	Complete(ctx context.Context, req llm.CompletionRequest) llm.Outcome
}

// Config carries everything the pipeline needs per deployment. All fields are
// immutable after construction; nothing here is hard-coded inside the logic.
type Config struct {
	Model            string
	Temperature      float32
	MaxTokens        int
	TopP             float32
	MaxSymptomLength int
	SystemPrompt     string
	Disclaimer       string
}

// Result is the single shape every pipeline invocation resolves to. On
// success Analysis, Disclaimer, Model and TokensUsed are set; on failure
// ErrorKind and ErrorMessage are set (plus ValidationReason for rejected
// input). Callers never observe intermediate pipeline states.
type Result struct {
	Success    bool
	Analysis   string
	Disclaimer string
	Model      string
	TokensUsed int

	ErrorKind        ErrorKind
	ErrorMessage     string
	ValidationReason ValidationReason
}

// Service runs the symptom-analysis pipeline.
type Service interface {
	// Analyze runs validate → prompt → complete → postprocess for one input.
	Analyze(ctx context.Context, symptoms string) Result
}

// service implements Service. It holds no mutable state; concurrent calls
// share only the immutable config and the completion client.
type service struct {
	client CompletionClient
	cfg    Config
}

// NewService creates a new analysis Service.
func NewService(client CompletionClient, cfg Config) Service {
	return &service{
		client: client,
		cfg:    cfg,
	}
}

// Analyze runs the full pipeline for a single symptom description.
// Validation failures short-circuit before any network call. Provider failure
// kinds propagate unchanged; none are downgraded or hidden.
func (s *service) Analyze(ctx context.Context, symptoms string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if err := ValidateSymptoms(symptoms, s.cfg.MaxSymptomLength); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			logger.WarnContext(ctx, "symptom input rejected", "reason", ve.Reason)
			return Result{
				ErrorKind:        ErrKindValidation,
				ErrorMessage:     ve.Message,
				ValidationReason: ve.Reason,
			}
		}
		return Result{ErrorKind: ErrKindValidation, ErrorMessage: err.Error()}
	}

	// The prompt carries the trimmed text; surrounding whitespace never
	// reaches the provider.
	req := llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    BuildPrompt(s.cfg.SystemPrompt, strings.TrimSpace(symptoms)),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		TopP:        s.cfg.TopP,
	}

	outcome := s.client.Complete(ctx, req)
	if !outcome.OK() {
		logger.ErrorContext(ctx, "completion call failed",
			"kind", outcome.Err.Kind, "error", outcome.Err.Message)
		return Result{
			ErrorKind:    kindFromFailure(outcome.Err.Kind),
			ErrorMessage: outcome.Err.Message,
		}
	}

	logger.InfoContext(ctx, "symptom analysis completed",
		"model", s.cfg.Model, "tokens_used", outcome.TokensUsed)

	return Result{
		Success:    true,
		Analysis:   EnsureBanner(outcome.Text),
		Disclaimer: s.cfg.Disclaimer,
		Model:      s.cfg.Model,
		TokensUsed: outcome.TokensUsed,
	}
}

func kindFromFailure(kind llm.FailureKind) ErrorKind {
	switch kind {
	case llm.FailureTimeout:
		return ErrKindTimeout
	case llm.FailureNetwork:
		return ErrKindNetwork
	case llm.FailureAuth:
		return ErrKindAuth
	case llm.FailureRateLimited:
		return ErrKindRateLimited
	default:
		return ErrKindAPI
	}
}
