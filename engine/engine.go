// Package engine owns the session state machine: phase transitions,
// command application, and event fanout to sinks. It contains no
// parsing, rendering, or transport logic.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"workshop-lab/domain"
	"workshop-lab/domain/event"
	apperrors "workshop-lab/errors"
	"workshop-lab/moderation"
)

// Summarizer is the advisory summarization capability. Failures are
// surfaced as non-fatal warnings, never as engine state changes.
type Summarizer interface {
	Summarize(ctx context.Context, entries []domain.TranscriptEntry) (string, error)
}

type EventSink interface {
	Consume(e event.DomainEvent)
}

// Engine applies facilitator commands to the single live session.
// Dispatch is strictly sequential; a command either fully applies or
// leaves the session untouched.
type Engine struct {
	log        *slog.Logger
	selector   *TurnSelector
	summarizer Summarizer
	moderator  *moderation.Moderator
	sinks      []EventSink
	session    *domain.Session
}

func NewEngine(log *slog.Logger, selector *TurnSelector, summarizer Summarizer, moderator *moderation.Moderator) *Engine {
	return &Engine{
		log:        log,
		selector:   selector,
		summarizer: summarizer,
		moderator:  moderator,
	}
}

func (e *Engine) RegisterSink(sinks ...EventSink) {
	e.sinks = append(e.sinks, sinks...)
}

// Phase reports Idle when no session is live.
func (e *Engine) Phase() domain.Phase {
	if e.session == nil {
		return domain.PhaseIdle
	}
	return e.session.Phase
}

// Config renders the current configuration; ok is false while Idle.
// Valid in any phase, no side effect.
func (e *Engine) Config() (domain.WorkshopConfig, bool) {
	if e.session == nil {
		return domain.WorkshopConfig{}, false
	}
	return e.session.Config, true
}

// TranscriptEntries returns the full ordered transcript. Valid in any
// phase, no side effect.
func (e *Engine) TranscriptEntries() []domain.TranscriptEntry {
	if e.session == nil {
		return nil
	}
	var out []domain.TranscriptEntry
	for entry := range e.session.Transcript.All() {
		out = append(out, entry)
	}
	return out
}

func (e *Engine) CurrentSpeaker() *domain.Participant {
	if e.session == nil {
		return nil
	}
	return e.session.CurrentSpeaker
}

// NewSession creates an empty Configured session. Idle only.
func (e *Engine) NewSession(name string) error {
	if err := e.requirePhase(domain.PhaseIdle, "new"); err != nil {
		return err
	}
	e.session = domain.NewSession(domain.EmptyConfig(name))
	e.log.Info("Session configured", "workshop", name)
	return nil
}

// LoadSession installs an externally validated configuration. Idle
// only; the caller (service layer) owns file access and validation.
func (e *Engine) LoadSession(config domain.WorkshopConfig, source string) error {
	if err := e.requirePhase(domain.PhaseIdle, "load"); err != nil {
		return err
	}
	e.session = domain.NewSession(config)
	e.appendEntry(domain.TranscriptEntry{
		Speaker: "system",
		Content: fmt.Sprintf("Loaded configuration from %q.", source),
		Kind:    domain.KindSystemNote,
	})
	e.log.Info("Session configured from file", "workshop", config.Name, "source", source)
	return nil
}

// Start moves Configured to Running, requiring at least one active
// participant.
func (e *Engine) Start() error {
	if err := e.requirePhase(domain.PhaseConfigured, "start"); err != nil {
		return err
	}
	if len(e.session.Roster.ActiveParticipants()) == 0 {
		return fmt.Errorf("%w: load a configuration with participants first", apperrors.ErrEmptyRoster)
	}

	e.session.Phase = domain.PhaseRunning
	e.appendEntry(domain.TranscriptEntry{
		Speaker: "system",
		Content: "Workshop started.",
		Kind:    domain.KindSystemNote,
	})
	e.emit(event.SessionStarted{Workshop: e.session.Config.Name, At: time.Now().UTC()})
	e.log.Info("Session running", "workshop", e.session.Config.Name,
		"participants", len(e.session.Roster.ActiveParticipants()))
	return nil
}

// Say appends a facilitator utterance. The content passes through the
// moderator first; the current speaker pointer does not move.
func (e *Engine) Say(content string) (domain.TranscriptEntry, error) {
	if err := e.requirePhase(domain.PhaseRunning, "say"); err != nil {
		return domain.TranscriptEntry{}, err
	}

	speaker := "facilitator"
	if f := e.session.Roster.Facilitator(); f != nil {
		speaker = f.Name
	}

	if e.moderator != nil {
		censored, found := e.moderator.Censor(content)
		if len(found) > 0 {
			e.log.Warn("Censored facilitator utterance", "words", found)
		}
		content = censored
	}

	entry := e.appendEntry(domain.TranscriptEntry{
		Speaker: speaker,
		Content: content,
		Kind:    domain.KindUtterance,
		Lang:    moderation.DetectLang(content),
	})
	return entry, nil
}

// Next advances the current speaker pointer via the TurnSelector. It
// appends no transcript entry. With a nominee, the advisor is bypassed.
func (e *Engine) Next(ctx context.Context, cmd domain.NextCommand) ([]*domain.Participant, error) {
	if err := e.requirePhase(domain.PhaseRunning, "next"); err != nil {
		return nil, err
	}

	turns := cmd.Turns
	if turns < 1 {
		turns = 1
	}

	var speakers []*domain.Participant
	for i := 0; i < turns; i++ {
		var next *domain.Participant
		var err error
		if cmd.Nominee != "" {
			next, err = e.selector.Nominate(e.session, cmd.Nominee)
		} else {
			next, err = e.selector.Pick(ctx, e.session)
		}
		if err != nil {
			return speakers, err
		}

		from := ""
		if e.session.CurrentSpeaker != nil {
			from = e.session.CurrentSpeaker.Name
		}
		e.session.SetCurrentSpeaker(next)
		speakers = append(speakers, next)
		e.emit(event.SpeakerChanged{
			Workshop: e.session.Config.Name,
			From:     from,
			To:       next.Name,
			Turn:     e.session.Turn,
			At:       time.Now().UTC(),
		})
	}
	return speakers, nil
}

// Summarize requests a best-effort summary of the transcript and, on
// success, appends it as a summary entry. Advisory failures leave the
// transcript unchanged and are surfaced as non-fatal.
func (e *Engine) Summarize(ctx context.Context) (string, error) {
	if err := e.requirePhase(domain.PhaseRunning, "summarize"); err != nil {
		return "", err
	}
	return e.appendSummary(ctx)
}

// Deactivate removes a participant from the speaking rotation.
// Idempotent for known names; unknown names fail with NotFound.
func (e *Engine) Deactivate(name string) error {
	if err := e.requirePhase(domain.PhaseRunning, "deactivate"); err != nil {
		return err
	}
	if ok := e.session.Roster.Deactivate(name); !ok {
		return fmt.Errorf("%w: participant %q", apperrors.ErrNotFound, name)
	}
	e.appendEntry(domain.TranscriptEntry{
		Speaker: "system",
		Content: fmt.Sprintf("Participant %s left the rotation.", name),
		Kind:    domain.KindSystemNote,
	})
	e.emit(event.ParticipantDeactivated{
		Workshop:    e.session.Config.Name,
		Participant: name,
		At:          time.Now().UTC(),
	})
	return nil
}

// EndSession finalizes the workshop: a closing note, a best-effort
// summary, then the session is destroyed. Ended is observable only for
// the duration of emitting the final summary; afterwards the engine is
// Idle again.
func (e *Engine) EndSession(ctx context.Context) (string, error) {
	if err := e.requirePhase(domain.PhaseRunning, "endsession"); err != nil {
		return "", err
	}

	e.appendEntry(domain.TranscriptEntry{
		Speaker: "system",
		Content: "Workshop session ended.",
		Kind:    domain.KindSystemNote,
	})
	e.session.Phase = domain.PhaseEnded

	summary, err := e.appendSummary(ctx)
	if err != nil {
		e.log.Warn("Final summary unavailable", "error", err)
		summary = ""
	}

	e.emit(event.SessionEnded{
		Workshop: e.session.Config.Name,
		Turns:    e.session.Turn,
		At:       time.Now().UTC(),
	})
	e.log.Info("Session ended", "workshop", e.session.Config.Name, "turns", e.session.Turn)
	e.session = nil
	return summary, nil
}

func (e *Engine) appendSummary(ctx context.Context) (string, error) {
	summary, err := e.summarizer.Summarize(ctx, e.session.Transcript.Tail(e.session.Transcript.Len()))
	if err != nil {
		return "", err
	}
	e.appendEntry(domain.TranscriptEntry{
		Speaker: "advisor",
		Content: summary,
		Kind:    domain.KindSummary,
	})
	return summary, nil
}

// appendEntry stores the entry and fans the resulting event out to the
// registered sinks.
func (e *Engine) appendEntry(entry domain.TranscriptEntry) domain.TranscriptEntry {
	stored := e.session.Transcript.Append(entry)
	e.emit(event.EntryAppended{
		ID:       stored.ID,
		Workshop: e.session.Config.Name,
		Seq:      stored.Seq,
		Speaker:  stored.Speaker,
		Content:  stored.Content,
		Kind:     stored.Kind,
		Lang:     stored.Lang,
		At:       stored.At,
	})
	return stored
}

func (e *Engine) emit(evt event.DomainEvent) {
	for _, sink := range e.sinks {
		sink.Consume(evt)
	}
}

func (e *Engine) requirePhase(want domain.Phase, command string) error {
	if got := e.Phase(); got != want {
		return fmt.Errorf("%w: /%s requires %s phase, session is %s",
			apperrors.ErrPhaseViolation, command, want, got)
	}
	return nil
}
