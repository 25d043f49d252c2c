package quota

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_limiter.go -package=mocks documind/internal/quota Limiter

import (
	"context"
	"fmt"
	"time"

	"documind/internal/storage"
)

// DefaultWeeklyLimit is the number of documents a user may upload per
// calendar week.
const DefaultWeeklyLimit = 5

// Status reports a user's position in the current upload window.
// ResetDate is always set, so callers can render "resets on X" even
// while uploads are still allowed.
type Status struct {
	Allowed   bool
	Count     int
	Limit     int
	ResetDate time.Time
}

// Limiter gates how many new documents a user may ingest per week.
type Limiter interface {
	// Check returns the user's quota status for the current window.
	Check(ctx context.Context, userID string) (Status, error)
}

// limiter implements Limiter by counting document rows created since the
// start of the current fixed calendar week. Nothing is persisted; the
// count is recomputed from creation timestamps on every check.
type limiter struct {
	documents storage.DocumentStore
	limit     int
	now       func() time.Time
}

// NewLimiter creates a Limiter with the given weekly limit.
// limit <= 0 falls back to the default of 5.
func NewLimiter(documents storage.DocumentStore, limit int) Limiter {
	if limit <= 0 {
		limit = DefaultWeeklyLimit
	}
	return &limiter{
		documents: documents,
		limit:     limit,
		now:       time.Now,
	}
}

// Check returns the user's quota status for the current window.
func (l *limiter) Check(ctx context.Context, userID string) (Status, error) {
	windowStart := WeekStart(l.now())

	count, err := l.documents.CountCreatedSince(ctx, userID, windowStart)
	if err != nil {
		return Status{}, fmt.Errorf("failed to count uploads in window: %w", err)
	}

	return Status{
		Allowed:   count < l.limit,
		Count:     count,
		Limit:     l.limit,
		ResetDate: windowStart.AddDate(0, 0, 7),
	}, nil
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
// A timestamp at exactly Monday 00:00:00 UTC belongs to the new week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := t.Truncate(24 * time.Hour)

	// time.Weekday numbers Sunday as 0; shift so Monday is 0
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
