package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"washplane/internal/store"
)

// GenerateToken assigns the next per-business-per-day token for a job
// created at now. Format: YYYYMMDD-NNN, where NNN is the day's creation
// count plus one, zero-padded to three digits. Past 999 the sequence keeps
// its natural width instead of wrapping.
//
// The day boundary is midnight in now's location. The counting scheme is
// only unique when creation is serialized per business; callers hold the
// store's per-business lock across count and insert.
func (e *Engine) GenerateToken(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID, now time.Time) (string, error) {
	day := DayStart(now)
	count, err := e.jobs.CountJobsCreatedSince(ctx, tx, businessID, day)
	if err != nil {
		return "", fmt.Errorf("count today's jobs: %w", err)
	}
	return FormatToken(day, count+1), nil
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatToken renders the human-facing token for a day and sequence number.
func FormatToken(day time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%03d", day.Format("20060102"), sequence)
}
