package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
)

type stubChatter struct {
	response string
	err      error
	prompt   string
}

func (s *stubChatter) Chat(_ context.Context, _, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func cands(names ...string) []*domain.Participant {
	var out []*domain.Participant
	for _, n := range names {
		out = append(out, domain.NewParticipant(n, domain.RoleParticipant, ""))
	}
	return out
}

func TestAdvisor_SuggestNextSpeaker_ParsesMarkerFormat(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{response: "Next speaker: Alice"}
	advisor := NewAdvisor(chatter, slog.Default())

	name, err := advisor.SuggestNextSpeaker(context.Background(), "Retro", nil, 0, cands("Alice", "Bob"))

	req.NoError(err)
	req.Equal("Alice", name)
}

func TestAdvisor_SuggestNextSpeaker_TakesLastMarkerAndTrims(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{response: "Reasoning about Next speaker: nobody...\nNext speaker: 'Bob'\nthanks"}
	advisor := NewAdvisor(chatter, slog.Default())

	name, err := advisor.SuggestNextSpeaker(context.Background(), "Retro", nil, 0, cands("Alice", "Bob"))

	req.NoError(err)
	req.Equal("Bob", name)
}

func TestAdvisor_SuggestNextSpeaker_MalformedResponseFails(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{response: "I think Bob should go"}
	advisor := NewAdvisor(chatter, slog.Default())

	_, err := advisor.SuggestNextSpeaker(context.Background(), "Retro", nil, 0, cands("Bob"))

	req.ErrorIs(err, apperrors.ErrAdvisoryFailure)
}

func TestAdvisor_SuggestNextSpeaker_TransportErrorFails(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{err: fmt.Errorf("connection refused")}
	advisor := NewAdvisor(chatter, slog.Default())

	_, err := advisor.SuggestNextSpeaker(context.Background(), "Retro", nil, 0, cands("Bob"))

	req.ErrorIs(err, apperrors.ErrAdvisoryFailure)
}

func TestAdvisor_SuggestNextSpeaker_PromptListsCandidates(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{response: "Next speaker: Alice"}
	advisor := NewAdvisor(chatter, slog.Default())
	transcript := []domain.TranscriptEntry{
		{Speaker: "Dana", Content: "What does Alice think?"},
	}

	candidates := cands("Alice", "Bob")
	candidates[0].Background = "backend engineer"
	candidates[0].RecordTurn(2)

	_, err := advisor.SuggestNextSpeaker(context.Background(), "Retro", transcript, 5, candidates)

	req.NoError(err)
	req.Contains(chatter.prompt, "Alice, Bob")
	req.Contains(chatter.prompt, "backend engineer")
	req.Contains(chatter.prompt, "quiet for 3 turns")
	req.Contains(chatter.prompt, "Dana: What does Alice think?")
	req.Contains(chatter.prompt, "[CONSTRAINTS]")
}

func TestAdvisor_Summarize_EmptyOutputFails(t *testing.T) {
	req := require.New(t)
	chatter := &stubChatter{response: "   \n"}
	advisor := NewAdvisor(chatter, slog.Default())

	_, err := advisor.Summarize(context.Background(), nil)

	req.ErrorIs(err, apperrors.ErrAdvisoryFailure)
}

func TestOllamaClient_Chat_RoundTrip(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/chat", r.URL.Path)

		var body ollamaRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("mistral:latest", body.Model)
		req.False(body.Stream)
		req.Len(body.Messages, 2)

		resp := ollamaResponse{Done: true}
		resp.Message.Role = "assistant"
		resp.Message.Content = "Next speaker: Alice"
		req.NoError(json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral:latest", time.Second)
	content, err := client.Chat(context.Background(), "system", "prompt")

	req.NoError(err)
	req.Equal("Next speaker: Alice", content)
}

func TestOllamaClient_Chat_NonOKStatusFails(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "missing", time.Second)
	_, err := client.Chat(context.Background(), "system", "prompt")

	req.Error(err)
	req.True(strings.Contains(err.Error(), "model not found"))
}

func TestOllamaClient_Chat_TimeoutAbandonsCall(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral:latest", 50*time.Millisecond)
	start := time.Now()
	_, err := client.Chat(context.Background(), "system", "prompt")

	req.Error(err)
	req.Less(time.Since(start), time.Second)
}
