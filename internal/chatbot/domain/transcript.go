package domain

import (
	"sync"
	"time"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type Entry struct {
	Role    string
	UserID  string
	Message string
	At      time.Time
}

// Transcript is an append-only chat log. It is safe for concurrent use.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
}

// AppendExchange records a user message and the bot reply as one step.
func (t *Transcript) AppendExchange(user, bot Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, user, bot)
}

func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}
