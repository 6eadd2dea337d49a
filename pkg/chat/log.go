// Package chat holds the shared class-chat state: a bounded message log
// and the set of users who joined the relay. Both are safe for concurrent
// use by the router and the scheduler.
package chat

import (
	"fmt"
	"sync"
	"time"
)

// Entry is one line of the class chat log.
type Entry struct {
	Time   time.Time
	Author string
	Text   string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s • %s: %s", e.Time.Format("2006-01-02 15:04"), e.Author, e.Text)
}

// Log is a fixed-capacity append-only message history. When full, the
// oldest entry is evicted on append.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 200
	}
	return &Log{capacity: capacity}
}

func (l *Log) Append(author, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Time: time.Now(), Author: author, Text: text})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Tail returns up to n most recent entries, oldest first.
func (l *Log) Tail(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	tail := make([]Entry, n)
	copy(tail, l.entries[len(l.entries)-n:])
	return tail
}

// TailLines renders the last n entries as display lines, oldest first.
func (l *Log) TailLines(n int) []string {
	tail := l.Tail(n)
	lines := make([]string, len(tail))
	for i, e := range tail {
		lines[i] = e.String()
	}
	return lines
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
