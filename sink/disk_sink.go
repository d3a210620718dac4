// Package sink connects domain events to their consumers. Sinks are
// one-way: they observe the engine, they never drive it.
package sink

import (
	"log/slog"

	"workshop-lab/domain/event"
	"workshop-lab/repositories"
)

// DiskSink persists every appended transcript entry. Storage errors
// are logged, not propagated: the in-memory transcript stays the
// source of truth for the live session.
type DiskSink struct {
	repository repositories.ITranscriptRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.ITranscriptRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(e event.DomainEvent) {
	switch evt := e.(type) {
	case event.EntryAppended:
		if err := d.repository.StoreEntry(toDiskEntry(evt)); err != nil {
			d.log.Error(err.Error())
		}
	}
}

func toDiskEntry(evt event.EntryAppended) repositories.DiskEntry {
	return repositories.DiskEntry{
		ID:       evt.ID,
		Workshop: evt.Workshop,
		Seq:      evt.Seq,
		Speaker:  evt.Speaker,
		Content:  evt.Content,
		Kind:     evt.Kind,
		Lang:     evt.Lang,
		At:       evt.At,
	}
}
