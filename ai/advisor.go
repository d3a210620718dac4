//go:generate go run go.uber.org/mock/mockgen -source=advisor.go -destination=../mocks/mock_advisor.go -package=mocks
// Package ai wraps the advisory LLM calls of the workshop engine.
// Both operations are read-only with respect to session state: the
// caller owns fallback policy and transcript mutation.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
)

// Chatter is the single request/response surface of the LLM transport.
// No retries happen at this layer.
type Chatter interface {
	Chat(ctx context.Context, systemMessage, prompt string) (string, error)
}

// Advisor answers "who should speak next" and "summarize this" using a
// Chatter. Malformed output is reported as ErrAdvisoryFailure, never
// guessed around.
type Advisor struct {
	chatter Chatter
	log     *slog.Logger
}

func NewAdvisor(chatter Chatter, log *slog.Logger) *Advisor {
	return &Advisor{chatter: chatter, log: log}
}

const speakerMarker = "Next speaker:"

// SuggestNextSpeaker asks for one of the candidates. The response must
// follow the "Next speaker: <name>" format; the returned name is NOT
// validated against the roster here.
func (a *Advisor) SuggestNextSpeaker(ctx context.Context, workshop string, transcript []domain.TranscriptEntry, turn int, candidates []*domain.Participant) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", apperrors.ErrAdvisoryFailure)
	}

	prompt := suggestionPrompt(workshop, transcript, turn, candidates)
	raw, err := a.chatter.Chat(ctx, "You analyse conversations and provide a single name.", prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAdvisoryFailure, err)
	}

	name, err := parseSuggestion(raw)
	if err != nil {
		a.log.Debug("Malformed advisor suggestion", "raw", raw)
		return "", err
	}
	return name, nil
}

// Summarize compresses the given transcript slice into best-effort text.
func (a *Advisor) Summarize(ctx context.Context, entries []domain.TranscriptEntry) (string, error) {
	raw, err := a.chatter.Chat(ctx, "You are a summarizer, you compress text.", summaryPrompt(entries))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrAdvisoryFailure, err)
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", apperrors.ErrAdvisoryFailure)
	}
	return summary, nil
}

// parseSuggestion extracts the name after the last "Next speaker:"
// marker. Anything else is a malformed response.
func parseSuggestion(raw string) (string, error) {
	idx := strings.LastIndex(raw, speakerMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: missing %q marker", apperrors.ErrAdvisoryFailure, speakerMarker)
	}
	name := raw[idx+len(speakerMarker):]
	if cut := strings.IndexByte(name, '\n'); cut >= 0 {
		name = name[:cut]
	}
	name = strings.Trim(strings.TrimSpace(name), `"'.`)
	if name == "" {
		return "", fmt.Errorf("%w: empty suggestion", apperrors.ErrAdvisoryFailure)
	}
	return name, nil
}
