//go:generate go run go.uber.org/mock/mockgen -source=transcript.go -destination=../mocks/mock_transcript_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"workshop-lab/domain"
)

type ITranscriptRepository interface {
	StoreEntry(entry DiskEntry) error
	GetEntries(workshop string, limit int) ([]DiskEntry, error)
	Search(ctx context.Context, terms string, limit int) ([]DiskEntry, error)
}

// DiskEntry is the persisted form of a transcript entry. The record is
// append-only; nothing ever rewrites or deletes a stored entry.
type DiskEntry struct {
	ID       uuid.UUID        `json:"id"`
	Workshop string           `json:"workshop"`
	Seq      int              `json:"seq"`
	Speaker  string           `json:"speaker"`
	Content  string           `json:"content"`
	Kind     domain.EntryKind `json:"kind"`
	Lang     string           `json:"lang,omitempty"`
	At       time.Time        `json:"at"`
}

type TranscriptRepository struct {
	db          *badger.DB
	blugeWriter *bluge.Writer
	log         *slog.Logger
}

func NewTranscriptRepository(db *badger.DB, blugeWriter *bluge.Writer, log *slog.Logger) *TranscriptRepository {
	return &TranscriptRepository{db: db, blugeWriter: blugeWriter, log: log}
}

// StoreEntry persists an entry in BadgerDB and indexes it in Bluge.
// The key is formatted as "entry:{workshop}:{seq_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Keep the UUID as a collision disconnector should two sessions
//     reuse a workshop name.
func (r *TranscriptRepository) StoreEntry(entry DiskEntry) error {
	key := fmt.Sprintf("entry:%s:%019d:%s", entry.Workshop, entry.Seq, entry.ID)
	bytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	}); err != nil {
		return err
	}
	return r.index(entry)
}

func (r *TranscriptRepository) index(entry DiskEntry) error {
	doc := bluge.NewDocument(entry.ID.String())
	doc.AddField(bluge.NewTextField("content", entry.Content).StoreValue())
	doc.AddField(bluge.NewKeywordField("speaker", entry.Speaker).StoreValue())
	doc.AddField(bluge.NewKeywordField("workshop", entry.Workshop).StoreValue())
	return r.blugeWriter.Update(doc.ID(), doc)
}

// GetEntries retrieves persisted entries for a workshop via a prefix
// scan. Thanks to the padded sequence in the key, entries come back
// already sorted chronologically. A limit of 0 means everything.
func (r *TranscriptRepository) GetEntries(workshop string, limit int) ([]DiskEntry, error) {
	var entries []DiskEntry
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("entry:%s:", workshop))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d entries reached", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var entry DiskEntry
				if err := json.Unmarshal(value, &entry); err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return entries, err
}

// Search runs a full-text match query over entry contents and returns
// the stored fields of the best hits.
func (r *TranscriptRepository) Search(ctx context.Context, terms string, limit int) ([]DiskEntry, error) {
	reader, err := r.blugeWriter.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewMatchQuery(terms).SetField("content")
	request := bluge.NewTopNSearch(limit, query)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []DiskEntry
	match, err := iterator.Next()
	for err == nil && match != nil {
		var hit DiskEntry
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				if id, parseErr := uuid.Parse(string(value)); parseErr == nil {
					hit.ID = id
				}
			case "content":
				hit.Content = string(value)
			case "speaker":
				hit.Speaker = string(value)
			case "workshop":
				hit.Workshop = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}
