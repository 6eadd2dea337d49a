// Package reminder implements the pending-reminder store and the
// background scheduler that delivers due reminders.
package reminder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reminder is a single pending notification. DueAt is always a concrete
// point in time; relative phrases are resolved before a Reminder exists.
// Channel and ChatID record where the notification must be delivered.
type Reminder struct {
	ID      string    `json:"id"`
	Owner   string    `json:"owner"`
	Channel string    `json:"channel"`
	ChatID  string    `json:"chat_id"`
	Text    string    `json:"text"`
	DueAt   time.Time `json:"due_at"`
}

// Store is a mutex-guarded collection of pending reminders. Reminders
// live in memory only; unbounded growth is an accepted limitation.
type Store struct {
	mu        sync.Mutex
	reminders []Reminder
}

func NewStore() *Store {
	return &Store{}
}

// Add appends a new reminder and returns it with its generated ID.
func (s *Store) Add(owner, channel, chatID, text string, dueAt time.Time) Reminder {
	r := Reminder{
		ID:      uuid.New().String(),
		Owner:   owner,
		Channel: channel,
		ChatID:  chatID,
		Text:    text,
		DueAt:   dueAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, r)
	return r
}

// ListFor returns owner's pending reminders in insertion order.
func (s *Store) ListFor(owner string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Reminder
	for _, r := range s.reminders {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out
}

// DrainDue removes and returns all reminders with DueAt <= now. The
// removal is atomic: a drained reminder is never returned twice and is
// invisible to ListFor afterwards.
func (s *Store) DrainDue(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if !r.DueAt.After(now) {
			due = append(due, r)
		} else {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
	return due
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}
