package engine

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"workshop-lab/ai"
	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
	"workshop-lab/mocks"
)

func sessionWith(names ...string) *domain.Session {
	participants := []*domain.Participant{
		domain.NewParticipant("Dana", domain.RoleFacilitator, "facilitates"),
	}
	for _, n := range names {
		participants = append(participants, domain.NewParticipant(n, domain.RoleParticipant, ""))
	}
	session := domain.NewSession(domain.WorkshopConfig{Name: "Retro", Participants: participants})
	session.Phase = domain.PhaseRunning
	return session
}

func advisorDown(t *testing.T) *ai.Advisor {
	ctrl := gomock.NewController(t)
	chatter := mocks.NewMockChatter(ctrl)
	chatter.EXPECT().
		Chat(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("connection refused")).
		AnyTimes()
	return ai.NewAdvisor(chatter, slog.Default())
}

func advisorSaying(t *testing.T, response string) *ai.Advisor {
	ctrl := gomock.NewController(t)
	chatter := mocks.NewMockChatter(ctrl)
	chatter.EXPECT().
		Chat(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(response, nil).
		AnyTimes()
	return ai.NewAdvisor(chatter, slog.Default())
}

func TestTurnSelector_Fallback_RoundRobinFromRosterOrder(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob", "Clara")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	// With the advisor unavailable and no prior speaker, turns follow
	// roster insertion order and wrap around.
	var picked []string
	for i := 0; i < 4; i++ {
		p, err := selector.Pick(context.Background(), session)
		req.NoError(err)
		picked = append(picked, p.Name)
		session.SetCurrentSpeaker(p)
	}
	req.Equal([]string{"Alice", "Bob", "Clara", "Alice"}, picked)
}

func TestTurnSelector_Fallback_VisitsEveryoneOnceBeforeRepeating(t *testing.T) {
	req := require.New(t)
	session := sessionWith("P1", "P2", "P3", "P4", "P5")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	seen := map[string]int{}
	for i := 0; i < 5; i++ {
		p, err := selector.Pick(context.Background(), session)
		req.NoError(err)
		seen[p.Name]++
		session.SetCurrentSpeaker(p)
	}

	req.Len(seen, 5)
	for name, count := range seen {
		req.Equal(1, count, "participant %s", name)
	}
}

func TestTurnSelector_ValidSuggestionIsHonored(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob", "Clara")
	selector := NewTurnSelector(advisorSaying(t, "Next speaker: Clara"), slog.Default(), 20)

	p, err := selector.Pick(context.Background(), session)

	req.NoError(err)
	req.Equal("Clara", p.Name)
}

func TestTurnSelector_SuggestionOfCurrentSpeakerFallsBack(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob", "Clara")
	session.SetCurrentSpeaker(session.Roster.Find("Alice"))
	selector := NewTurnSelector(advisorSaying(t, "Next speaker: Alice"), slog.Default(), 20)

	p, err := selector.Pick(context.Background(), session)

	// Alice is excluded as current speaker, round-robin resumes after her
	req.NoError(err)
	req.Equal("Bob", p.Name)
}

func TestTurnSelector_SuggestionOfUnknownIdentityFallsBack(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob")
	selector := NewTurnSelector(advisorSaying(t, "Next speaker: Zorro"), slog.Default(), 20)

	p, err := selector.Pick(context.Background(), session)

	req.NoError(err)
	req.Equal("Alice", p.Name)
}

func TestTurnSelector_SuggestionOfFacilitatorFallsBack(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob")
	selector := NewTurnSelector(advisorSaying(t, "Next speaker: Dana"), slog.Default(), 20)

	p, err := selector.Pick(context.Background(), session)

	// The facilitator is never an eligible next speaker
	req.NoError(err)
	req.Equal("Alice", p.Name)
}

func TestTurnSelector_SingleParticipantMayRepeat(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	for i := 0; i < 3; i++ {
		p, err := selector.Pick(context.Background(), session)
		req.NoError(err)
		req.Equal("Alice", p.Name)
		session.SetCurrentSpeaker(p)
	}
}

func TestTurnSelector_NoActiveParticipantFails(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob")
	session.Roster.Deactivate("Alice")
	session.Roster.Deactivate("Bob")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	_, err := selector.Pick(context.Background(), session)

	req.ErrorIs(err, apperrors.ErrNoEligibleSpeaker)
}

func TestTurnSelector_Nominate_PrefixMatch(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	p, err := selector.Nominate(session, "bo")

	req.NoError(err)
	req.Equal("Bob", p.Name)
}

func TestTurnSelector_Nominate_UnknownPrefixFails(t *testing.T) {
	req := require.New(t)
	session := sessionWith("Alice", "Bob")
	selector := NewTurnSelector(advisorDown(t), slog.Default(), 20)

	_, err := selector.Nominate(session, "zz")

	req.ErrorIs(err, apperrors.ErrNotFound)
}
