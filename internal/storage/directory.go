package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"log/slog"

	"github.com/bibiti/supportbot/core/logger"
	"github.com/bibiti/supportbot/internal/domain"
)

// Directory owns the in-memory user registry and mirrors it to a flat JSON
// file on every mutation. Persistence is best-effort: an I/O failure is
// logged and the in-memory state keeps serving the current session.
type Directory struct {
	mu    sync.RWMutex
	path  string
	users map[int64]*domain.User
}

// NewDirectory creates a directory backed by the given file path.
func NewDirectory(path string) *Directory {
	return &Directory{
		path:  path,
		users: make(map[int64]*domain.User),
	}
}

// Load reads the backing file into memory. A missing file is not an error.
func (d *Directory) Load(ctx context.Context) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read users file: %w", err)
	}

	raw := make(map[string]domain.User)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse users file: %w", err)
	}

	d.mu.Lock()
	for key, u := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.Warn(ctx, "store.users", "load.skip",
				slog.String("status", "skip"),
				slog.String("payload", key),
			)
			continue
		}
		user := u
		user.ID = id
		d.users[id] = &user
	}
	count := len(d.users)
	d.mu.Unlock()

	logger.Info(ctx, "store.users", "load",
		slog.String("status", "ok"),
		slog.Int("count", count),
	)
	return nil
}

// Upsert creates or refreshes the profile fields of a user. Rating history is
// preserved. Called on every inbound update so stale profiles self-heal.
func (d *Directory) Upsert(ctx context.Context, user domain.User) {
	d.mu.Lock()
	existing, ok := d.users[user.ID]
	if !ok {
		u := user
		d.users[user.ID] = &u
	} else {
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
	}
	d.mu.Unlock()

	if !ok {
		logger.Info(ctx, "store.users", "user.new",
			slog.String("status", "ok"),
			slog.Int64("user_id", user.ID),
			slog.String("username", logger.SanitizeLimit(user.Username, 64)),
		)
	}
	d.persist(ctx)
}

// RecordRating sets one dimension of the user's rating for a venue,
// creating the venue entry when it does not exist yet. A repeated rating for
// the same (user, venue, dimension) overwrites the previous score.
func (d *Directory) RecordRating(ctx context.Context, userID int64, location string, dim domain.RatingDimension, score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("rating score out of range: %d", score)
	}

	d.mu.Lock()
	user, ok := d.users[userID]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("unknown user %d", userID)
	}

	var entry *domain.LocationRating
	for i := range user.Ratings {
		if user.Ratings[i].Location == location {
			entry = &user.Ratings[i]
			break
		}
	}
	if entry == nil {
		user.Ratings = append(user.Ratings, domain.LocationRating{Location: location})
		entry = &user.Ratings[len(user.Ratings)-1]
	}
	switch dim {
	case domain.DimensionDrink:
		entry.DrinkRating = &score
	case domain.DimensionService:
		entry.ServiceRating = &score
	default:
		d.mu.Unlock()
		return fmt.Errorf("unknown rating dimension %q", dim)
	}
	d.mu.Unlock()

	logger.Info(ctx, "store.users", "rating.record",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("location", location),
		slog.String("op", string(dim)),
		slog.Int("score", score),
	)
	d.persist(ctx)
	return nil
}

// Get returns a copy of the user entry.
func (d *Directory) Get(userID int64) (domain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[userID]
	if !ok {
		return domain.User{}, false
	}
	out := *u
	out.Ratings = append([]domain.LocationRating(nil), u.Ratings...)
	return out, true
}

// IDs returns all known user identifiers, for broadcast fan-out.
func (d *Directory) IDs() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]int64, 0, len(d.users))
	for id := range d.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports the number of known users.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// Snapshot returns a copy of every user entry, ordered by identifier.
func (d *Directory) Snapshot() []domain.User {
	d.mu.RLock()
	users := make([]domain.User, 0, len(d.users))
	for _, u := range d.users {
		out := *u
		out.Ratings = append([]domain.LocationRating(nil), u.Ratings...)
		users = append(users, out)
	}
	d.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// Export renders the printable user listing for the admin.
func (d *Directory) Export() string {
	users := d.Snapshot()

	var b strings.Builder
	b.WriteString("Список пользователей\n")
	b.WriteString("==================\n\n")
	for _, u := range users {
		fmt.Fprintf(&b, "ID: %d\nUsername: @%s\nИмя: %s %s\n", u.ID, u.Username, u.FirstName, u.LastName)
		b.WriteString("\n" + strings.Repeat("=", 40) + "\n\n")
	}
	return b.String()
}

// persist writes the whole directory to the backing file via atomic rename.
// Failures are logged, never escalated: durability is best-effort here.
func (d *Directory) persist(ctx context.Context) {
	d.mu.RLock()
	raw := make(map[string]domain.User, len(d.users))
	for id, u := range d.users {
		out := *u
		out.Ratings = append([]domain.LocationRating(nil), u.Ratings...)
		raw[strconv.FormatInt(id, 10)] = out
	}
	d.mu.RUnlock()

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		logger.Error(ctx, "store.users", "persist",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logger.Error(ctx, "store.users", "persist",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	if err := os.Rename(tmp, d.path); err != nil {
		logger.Error(ctx, "store.users", "persist",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}

	logger.Debug(ctx, "store.users", "persist",
		slog.String("status", "ok"),
		slog.Int("count", len(raw)),
		slog.String("payload", filepath.Base(d.path)),
	)
}
