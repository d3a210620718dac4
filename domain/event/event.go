// Package event defines domain events emitted by the session engine.
// Sinks consume them for persistence or display; events never flow
// back into the engine.
package event

import (
	"time"

	"github.com/google/uuid"

	"workshop-lab/domain"
)

type DomainEvent interface {
	Session() string
}

type EntryAppended struct {
	ID       uuid.UUID
	Workshop string
	Seq      int
	Speaker  string
	Content  string
	Kind     domain.EntryKind
	Lang     string
	At       time.Time
}

func (e EntryAppended) Session() string { return e.Workshop }

type SpeakerChanged struct {
	Workshop string
	From     string
	To       string
	Turn     int
	At       time.Time
}

func (e SpeakerChanged) Session() string { return e.Workshop }

type SessionStarted struct {
	Workshop string
	At       time.Time
}

func (e SessionStarted) Session() string { return e.Workshop }

type SessionEnded struct {
	Workshop string
	Turns    int
	At       time.Time
}

func (e SessionEnded) Session() string { return e.Workshop }

type ParticipantDeactivated struct {
	Workshop    string
	Participant string
	At          time.Time
}

func (e ParticipantDeactivated) Session() string { return e.Workshop }
