package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/chatbot/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

const anonymousUser = "anonymous"

type conversation struct {
	transcript *domain.Transcript
	touched    time.Time
}

// Service answers chat messages and keeps one transcript per session.
type Service struct {
	responder *domain.Responder
	model     string
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*conversation
}

func NewService(responder *domain.Responder, model string, ttl time.Duration) *Service {
	return &Service{
		responder: responder,
		model:     model,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*conversation),
	}
}

// Model is the configured AI model identifier.
func (s *Service) Model() string { return s.model }

func (s *Service) transcript(sessionID string, create bool) *domain.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.sessions[sessionID]
	if !ok {
		if !create {
			return nil
		}
		c = &conversation{transcript: &domain.Transcript{}}
		s.sessions[sessionID] = c
	}
	c.touched = s.now()
	return c.transcript
}

// Chat answers message and appends the exchange to the session transcript.
func (s *Service) Chat(ctx context.Context, sessionID, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperr.Invalid("Message cannot be empty.")
	}
	if err := ctx.Err(); err != nil {
		return "", apperr.Internal(err, "answering chat")
	}
	if strings.TrimSpace(userID) == "" {
		userID = anonymousUser
	}

	reply := s.responder.Respond(message)
	now := s.now().UTC()
	s.transcript(sessionID, true).AppendExchange(
		domain.Entry{Role: domain.RoleUser, UserID: userID, Message: message, At: now},
		domain.Entry{Role: domain.RoleBot, Message: reply, At: now},
	)
	return reply, nil
}

func (s *Service) History(sessionID string) []domain.Entry {
	t := s.transcript(sessionID, false)
	if t == nil {
		return []domain.Entry{}
	}
	return t.Entries()
}

func (s *Service) ClearHistory(sessionID string) {
	if t := s.transcript(sessionID, false); t != nil {
		t.Clear()
	}
}

// Sweep drops transcripts idle longer than the TTL and returns how many went.
func (s *Service) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, c := range s.sessions {
		if now.Sub(c.touched) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Service) Run(ctx context.Context, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			s.Sweep(now)
		}
	}
}
