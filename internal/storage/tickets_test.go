package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibiti/supportbot/internal/domain"
)

func TestTicketCreateAssignsUniqueIDs(t *testing.T) {
	s := NewTicketStore()
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		ticket := s.Create(ctx, domain.User{ID: 1}, 1, domain.CategoryGeneral, "body")
		require.NotEmpty(t, ticket.ID)
		_, dup := seen[ticket.ID]
		require.False(t, dup, "duplicate ticket id %s", ticket.ID)
		seen[ticket.ID] = struct{}{}
	}
	assert.Equal(t, 10000, s.Len())
}

func TestTicketSnapshotsSubmitter(t *testing.T) {
	s := NewTicketStore()
	user := domain.User{ID: 5, Username: "anna", FirstName: "Анна", LastName: "Петрова"}

	ticket := s.Create(context.Background(), user, 42, domain.CategoryDrink, "горько")

	got, ok := s.Get(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "anna", got.Username)
	assert.Equal(t, "Анна Петрова", got.FullName)
	assert.Equal(t, domain.CategoryDrink, got.Category)
	assert.Equal(t, "горько", got.Body)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTicketGetMissing(t *testing.T) {
	s := NewTicketStore()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}
