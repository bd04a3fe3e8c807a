package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"log/slog"

	"github.com/bibiti/supportbot/core/logger"
	"github.com/bibiti/supportbot/internal/domain"
)

// TicketStore keeps user submissions in memory for the process lifetime.
// Tickets are append-only and immutable once created.
type TicketStore struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketStore returns an empty store.
func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]domain.Ticket)}
}

// Create stores a new ticket and returns it with a freshly assigned identifier.
func (s *TicketStore) Create(ctx context.Context, user domain.User, chatID int64, category domain.Category, body string) domain.Ticket {
	t := domain.Ticket{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ChatID:    chatID,
		Username:  user.Username,
		FullName:  user.DisplayName(),
		Category:  category,
		Body:      body,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.tickets[t.ID] = t
	count := len(s.tickets)
	s.mu.Unlock()

	logger.Info(ctx, "store.tickets", "ticket.create",
		slog.String("status", "ok"),
		slog.String("ticket_id", t.ID),
		slog.String("category", string(t.Category)),
		slog.Int64("user_id", t.UserID),
		slog.Int("count", count),
	)
	return t
}

// Get returns the ticket by identifier.
func (s *TicketStore) Get(id string) (domain.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	return t, ok
}

// Len reports how many tickets are held in memory.
func (s *TicketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}
