package chat

import (
	"sort"
	"sync"
)

// Members is the set of users who opted into the chat relay. A user must
// join before their chat messages are broadcast.
type Members struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func NewMembers() *Members {
	return &Members{set: make(map[string]struct{})}
}

func (m *Members) Join(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set[userID] = struct{}{}
}

func (m *Members) Contains(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.set[userID]
	return ok
}

// List returns the member IDs in stable order.
func (m *Members) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.set))
	for id := range m.set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
