package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is an immutable record of a published game event.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	Slot      int       `json:"slot"`   // Active save slot, 0 when no session is live
	Detail    string    `json:"detail"` // Free-form context, e.g. the pet name
}

// Persister defines how a journal entry is durably stored.
type Persister interface {
	Append(entry Entry) error
}

// Journal is the in-memory append-only log of published events, with an
// optional write-through persister. Unlike the Dispatcher it is safe for
// concurrent use, since replays may be requested from HTTP handlers.
type Journal struct {
	mu        sync.RWMutex
	entries   []Entry
	persister Persister
}

// NewJournal creates a journal with an optional persister (nil disables
// write-through).
func NewJournal(persister Persister) *Journal {
	return &Journal{
		entries:   make([]Entry, 0),
		persister: persister,
	}
}

// Append adds an entry to the journal. Entries are immutable once appended.
func (j *Journal) Append(entry Entry) {
	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	if j.persister != nil {
		// Write through to persistent storage off the hot path.
		go func(e Entry) {
			_ = j.persister.Append(e)
		}(entry)
	}
}

// Replay returns the full history of entries.
func (j *Journal) Replay() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// ByKind returns all entries of a given kind, oldest first.
func (j *Journal) ByKind(kind Kind) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var out []Entry
	for _, e := range j.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// NewEntryID creates a unique journal entry identifier.
func NewEntryID() string {
	return uuid.NewString()
}
