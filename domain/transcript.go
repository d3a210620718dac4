// Package domain contains core concepts of the workshop engine.
// This file defines the append-only transcript and its entries.
// Entries are immutable; corrections are new system-note entries.
package domain

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

type EntryKind string

const (
	KindUtterance  EntryKind = "utterance"
	KindSystemNote EntryKind = "system-note"
	KindSummary    EntryKind = "summary"
)

// TranscriptEntry is one immutable line of the workshop record.
type TranscriptEntry struct {
	ID      uuid.UUID
	Seq     int
	Speaker string
	Content string
	Kind    EntryKind
	Lang    string
	At      time.Time
}

// TranscriptLog is the append-only ordered record of the session.
// Sequence numbers are strictly increasing with no gaps; the total
// order is the insertion order.
type TranscriptLog struct {
	entries []TranscriptEntry
}

func NewTranscriptLog() *TranscriptLog {
	return &TranscriptLog{entries: nil}
}

// Append assigns the next sequence number and stores the entry.
// It never fails.
func (t *TranscriptLog) Append(entry TranscriptEntry) TranscriptEntry {
	entry.Seq = len(t.entries) + 1
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	t.entries = append(t.entries, entry)
	return entry
}

func (t *TranscriptLog) Len() int {
	return len(t.entries)
}

// All yields every entry in chronological order. The sequence is
// restartable: ranging over it twice yields the same entries.
func (t *TranscriptLog) All() iter.Seq[TranscriptEntry] {
	return func(yield func(TranscriptEntry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Latest yields the most recent n entries in chronological order.
func (t *TranscriptLog) Latest(n int) iter.Seq[TranscriptEntry] {
	start := len(t.entries) - n
	if start < 0 {
		start = 0
	}
	return func(yield func(TranscriptEntry) bool) {
		for _, e := range t.entries[start:] {
			if !yield(e) {
				return
			}
		}
	}
}

// Tail collects the most recent n entries into a slice, oldest first.
func (t *TranscriptLog) Tail(n int) []TranscriptEntry {
	var out []TranscriptEntry
	for e := range t.Latest(n) {
		out = append(out, e)
	}
	return out
}
