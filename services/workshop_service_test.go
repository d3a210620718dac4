package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"workshop-lab/domain"
	"workshop-lab/engine"
	apperrors "workshop-lab/errors"
	"workshop-lab/mocks"
	"workshop-lab/repositories"
)

type offlineSuggester struct{}

func (offlineSuggester) SuggestNextSpeaker(context.Context, string, []domain.TranscriptEntry, int, []*domain.Participant) (string, error) {
	return "", fmt.Errorf("connection refused")
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(context.Context, []domain.TranscriptEntry) (string, error) {
	return "", fmt.Errorf("%w: model timed out", apperrors.ErrAdvisoryFailure)
}

func runningService(t *testing.T, summarizer engine.Summarizer, repo repositories.ITranscriptRepository) *WorkshopService {
	t.Helper()
	selector := engine.NewTurnSelector(offlineSuggester{}, slog.Default(), 20)
	e := engine.NewEngine(slog.Default(), selector, summarizer, nil)

	config := domain.WorkshopConfig{
		Name: "Retro",
		Participants: []*domain.Participant{
			domain.NewParticipant("Dana", domain.RoleFacilitator, ""),
			domain.NewParticipant("Alice", domain.RoleParticipant, ""),
			domain.NewParticipant("Bob", domain.RoleParticipant, ""),
		},
	}
	require.NoError(t, e.LoadSession(config, "retro.yaml"))
	require.NoError(t, e.Start())
	return NewWorkshopService(e, nil, repo, slog.Default())
}

func TestExecute_NextReportsSpeakerLines(t *testing.T) {
	req := require.New(t)
	svc := runningService(t, failingSummarizer{}, nil)

	resp, err := svc.Execute(context.Background(), "/next 2")

	req.NoError(err)
	req.Equal([]string{"Next speaker: Alice.", "Next speaker: Bob."}, resp.Feedback)
}

func TestExecute_SummarizeFailureIsNonFatal(t *testing.T) {
	req := require.New(t)
	svc := runningService(t, failingSummarizer{}, nil)

	resp, err := svc.Execute(context.Background(), "/util summarize")

	// The advisory failure becomes feedback, not an error
	req.NoError(err)
	req.Len(resp.Feedback, 1)
	req.Contains(resp.Feedback[0], "Summary unavailable")

	// And the session is still usable
	_, err = svc.Execute(context.Background(), "/next")
	req.NoError(err)
}

func TestExecute_SummarizeWhileIdleIsPhaseViolation(t *testing.T) {
	req := require.New(t)
	selector := engine.NewTurnSelector(offlineSuggester{}, slog.Default(), 20)
	e := engine.NewEngine(slog.Default(), selector, failingSummarizer{}, nil)
	svc := NewWorkshopService(e, nil, nil, slog.Default())

	_, err := svc.Execute(context.Background(), "/util summarize")

	req.ErrorIs(err, apperrors.ErrPhaseViolation)
}

func TestExecute_SearchDelegatesToRepository(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockITranscriptRepository(ctrl)
	repo.EXPECT().
		Search(gomock.Any(), "action items", searchLimit).
		Return([]repositories.DiskEntry{{Workshop: "Retro", Speaker: "Alice", Content: "action items for next week"}}, nil)
	svc := runningService(t, failingSummarizer{}, repo)

	resp, err := svc.Execute(context.Background(), "/util search action items")

	req.NoError(err)
	req.Len(resp.Hits, 1)
	req.Equal("Alice", resp.Hits[0].Speaker)
}

func TestExecute_UnknownCommandDoesNotTouchSession(t *testing.T) {
	req := require.New(t)
	svc := runningService(t, failingSummarizer{}, nil)

	_, err := svc.Execute(context.Background(), "/dance")
	req.ErrorIs(err, apperrors.ErrUnknownCommand)

	resp, err := svc.Execute(context.Background(), "/view_transcript")
	req.NoError(err)
	// load note + start note only
	req.Len(resp.Entries, 2)
}

func TestExecute_ShowWhileIdle(t *testing.T) {
	req := require.New(t)
	selector := engine.NewTurnSelector(offlineSuggester{}, slog.Default(), 20)
	e := engine.NewEngine(slog.Default(), selector, failingSummarizer{}, nil)
	svc := NewWorkshopService(e, nil, nil, slog.Default())

	resp, err := svc.Execute(context.Background(), "/show")

	req.NoError(err)
	req.Nil(resp.Config)
	req.Contains(resp.Feedback[0], "No session configured")
}
