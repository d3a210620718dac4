package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
)

// Suggester is the advisory side of next-speaker selection. The
// selector treats its output as a hint, never as a decision.
type Suggester interface {
	SuggestNextSpeaker(ctx context.Context, workshop string, transcript []domain.TranscriptEntry, turn int, candidates []*domain.Participant) (string, error)
}

// suggestionOutcome tags what happened to an advisory suggestion.
type suggestionOutcome string

const (
	outcomeSuggestion suggestionOutcome = "suggestion"
	outcomeInvalid    suggestionOutcome = "invalid"
	outcomeFailed     suggestionOutcome = "failed"
)

// TurnSelector decides who speaks next: the advisor proposes, the
// roster disposes. When the advisory call fails or names an ineligible
// identity, a deterministic round-robin over roster insertion order
// takes over.
type TurnSelector struct {
	advisor       Suggester
	log           *slog.Logger
	contextWindow int
}

func NewTurnSelector(advisor Suggester, log *slog.Logger, contextWindow int) *TurnSelector {
	return &TurnSelector{advisor: advisor, log: log, contextWindow: contextWindow}
}

// Pick returns exactly one eligible participant for the session, or
// ErrNoEligibleSpeaker when no active participant remains. Facilitators
// are never eligible. The current speaker is excluded unless they are
// the only active participant left.
func (s *TurnSelector) Pick(ctx context.Context, session *domain.Session) (*domain.Participant, error) {
	eligible, err := eligibleSet(session)
	if err != nil {
		return nil, err
	}

	if suggested := s.consultAdvisor(ctx, session, eligible); suggested != nil {
		return suggested, nil
	}
	return roundRobin(session, eligible), nil
}

// Nominate bypasses the advisor and picks the first active participant
// whose name starts with the given prefix.
func (s *TurnSelector) Nominate(session *domain.Session, prefix string) (*domain.Participant, error) {
	if _, err := eligibleSet(session); err != nil {
		return nil, err
	}
	p := session.Roster.FindByPrefix(prefix)
	if p == nil {
		return nil, fmt.Errorf("%w: no active participant named like %q", apperrors.ErrNotFound, prefix)
	}
	return p, nil
}

// eligibleSet computes active members minus the current speaker. An
// immediate self-repeat is only permitted when a single active
// participant remains.
func eligibleSet(session *domain.Session) ([]*domain.Participant, error) {
	active := session.Roster.ActiveParticipants()
	if len(active) == 0 {
		return nil, apperrors.ErrNoEligibleSpeaker
	}

	eligible := lo.Filter(active, func(p *domain.Participant, _ int) bool {
		return p != session.CurrentSpeaker
	})
	if len(eligible) == 0 {
		eligible = active
	}
	return eligible, nil
}

func (s *TurnSelector) consultAdvisor(ctx context.Context, session *domain.Session, eligible []*domain.Participant) *domain.Participant {
	name, err := s.advisor.SuggestNextSpeaker(ctx, session.Config.Name, session.Transcript.Tail(s.contextWindow), session.Turn, eligible)
	if err != nil {
		s.log.Debug("Advisor unavailable, falling back to round-robin",
			"outcome", outcomeFailed, "error", err)
		return nil
	}

	if p := matchCandidate(eligible, name); p != nil {
		s.log.Debug("Advisor suggestion accepted", "outcome", outcomeSuggestion, "speaker", p.Name)
		return p
	}
	s.log.Debug("Advisor suggested ineligible identity, falling back to round-robin",
		"outcome", outcomeInvalid, "suggested", name)
	return nil
}

// matchCandidate validates a suggested name against the eligible set:
// exact match first, then unique-prefix tolerance for chatty models.
func matchCandidate(eligible []*domain.Participant, name string) *domain.Participant {
	for _, p := range eligible {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	lowered := strings.ToLower(name)
	for _, p := range eligible {
		if strings.HasPrefix(strings.ToLower(p.Name), lowered) {
			return p
		}
	}
	return nil
}

// roundRobin resumes after the current speaker's position in roster
// insertion order. It is deterministic and total for a non-empty
// eligible set.
func roundRobin(session *domain.Session, eligible []*domain.Participant) *domain.Participant {
	members := session.Roster.Members()
	start := 0
	if session.CurrentSpeaker != nil {
		if idx := lo.IndexOf(members, session.CurrentSpeaker); idx >= 0 {
			start = idx + 1
		}
	}

	for i := 0; i < len(members); i++ {
		candidate := members[(start+i)%len(members)]
		if lo.Contains(eligible, candidate) {
			return candidate
		}
	}
	// eligibleSet guarantees at least one eligible member.
	return eligible[0]
}
