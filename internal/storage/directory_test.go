package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibiti/supportbot/internal/domain"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	return NewDirectory(filepath.Join(t.TempDir(), "users.json"))
}

func TestUpsertRefreshesProfileKeepsRatings(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()

	d.Upsert(ctx, domain.User{ID: 1, Username: "old", FirstName: "Иван"})
	require.NoError(t, d.RecordRating(ctx, 1, "Центр", domain.DimensionDrink, 5))

	d.Upsert(ctx, domain.User{ID: 1, Username: "new", FirstName: "Иван", LastName: "Петров"})
	assert.Equal(t, 1, d.Len(), "upsert must not duplicate users")

	u, ok := d.Get(1)
	require.True(t, ok)
	assert.Equal(t, "new", u.Username)
	assert.Equal(t, "Петров", u.LastName)
	require.Len(t, u.Ratings, 1, "profile refresh must keep ratings")
	require.NotNil(t, u.Ratings[0].DrinkRating)
	assert.Equal(t, 5, *u.Ratings[0].DrinkRating)
}

func TestRecordRatingDimensionsIndependent(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()
	d.Upsert(ctx, domain.User{ID: 2})

	require.NoError(t, d.RecordRating(ctx, 2, "Центр", domain.DimensionDrink, 3))

	u, _ := d.Get(2)
	require.Len(t, u.Ratings, 1)
	require.NotNil(t, u.Ratings[0].DrinkRating)
	assert.Nil(t, u.Ratings[0].ServiceRating, "service score must stay unset")

	require.NoError(t, d.RecordRating(ctx, 2, "Центр", domain.DimensionService, 4))
	u, _ = d.Get(2)
	require.Len(t, u.Ratings, 1, "same venue must reuse the entry")
	assert.Equal(t, 4, *u.Ratings[0].ServiceRating)

	require.NoError(t, d.RecordRating(ctx, 2, "Север", domain.DimensionDrink, 5))
	u, _ = d.Get(2)
	assert.Len(t, u.Ratings, 2, "a different venue gets its own entry")
}

func TestRecordRatingValidatesScore(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()
	d.Upsert(ctx, domain.User{ID: 3})

	assert.Error(t, d.RecordRating(ctx, 3, "Центр", domain.DimensionDrink, 0))
	assert.Error(t, d.RecordRating(ctx, 3, "Центр", domain.DimensionDrink, 6))
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	ctx := context.Background()

	d := NewDirectory(path)
	d.Upsert(ctx, domain.User{ID: 7, Username: "anna", FirstName: "Анна"})
	require.NoError(t, d.RecordRating(ctx, 7, "Центр", domain.DimensionService, 2))

	reloaded := NewDirectory(path)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, 1, reloaded.Len())

	u, ok := reloaded.Get(7)
	require.True(t, ok)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "anna", u.Username)
	require.Len(t, u.Ratings, 1)
	require.NotNil(t, u.Ratings[0].ServiceRating)
	assert.Equal(t, 2, *u.Ratings[0].ServiceRating)
}

func TestLoadMissingFile(t *testing.T) {
	d := NewDirectory(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, d.Load(context.Background()))
	assert.Equal(t, 0, d.Len())
}

func TestExportListsUsers(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()
	d.Upsert(ctx, domain.User{ID: 2, Username: "bob", FirstName: "Боб"})
	d.Upsert(ctx, domain.User{ID: 1, Username: "anna", FirstName: "Анна"})

	out := d.Export()
	assert.Contains(t, out, "ID: 1")
	assert.Contains(t, out, "@anna")
	assert.Contains(t, out, "ID: 2")
	assert.Less(t, // stable order by ID
		indexOf(t, out, "ID: 1"), indexOf(t, out, "ID: 2"))
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	t.Fatalf("%q not found", sub)
	return -1
}
