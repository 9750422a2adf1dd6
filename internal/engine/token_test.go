package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"washplane/internal/store"
)

type countingJobCounter struct {
	fakeJobCounter
	gotSince time.Time
}

func (c *countingJobCounter) CountJobsCreatedSince(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID, since time.Time) (int64, error) {
	c.gotSince = since
	return c.today, c.createdErr
}

func TestGenerateToken_FirstOfTheDay(t *testing.T) {
	counter := &countingJobCounter{}
	e := New(&fakeBusinessSource{}, counter)

	now := time.Date(2024, 12, 15, 9, 30, 45, 0, time.UTC)
	token, err := e.GenerateToken(context.Background(), nil, uuid.New(), now)
	require.NoError(t, err)
	assert.Equal(t, "20241215-001", token)

	// The count must start at today's midnight, not at now.
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), counter.gotSince)
}

func TestGenerateToken_Sequence(t *testing.T) {
	counter := &countingJobCounter{fakeJobCounter: fakeJobCounter{today: 4}}
	e := New(&fakeBusinessSource{}, counter)

	now := time.Date(2024, 12, 15, 18, 0, 0, 0, time.UTC)
	token, err := e.GenerateToken(context.Background(), nil, uuid.New(), now)
	require.NoError(t, err)
	assert.Equal(t, "20241215-005", token)
}

func TestGenerateToken_WidensPastThreeDigits(t *testing.T) {
	counter := &countingJobCounter{fakeJobCounter: fakeJobCounter{today: 1500}}
	e := New(&fakeBusinessSource{}, counter)

	now := time.Date(2024, 12, 15, 23, 59, 0, 0, time.UTC)
	token, err := e.GenerateToken(context.Background(), nil, uuid.New(), now)
	require.NoError(t, err)
	assert.Equal(t, "20241215-1501", token)
}

func TestDayStart_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2025, 1, 2, 3, 4, 5, 6, loc)

	day := DayStart(now)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, loc), day)
	assert.Equal(t, loc, day.Location())
}

func TestFormatToken_ZeroPadding(t *testing.T) {
	day := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240307-001", FormatToken(day, 1))
	assert.Equal(t, "20240307-042", FormatToken(day, 42))
	assert.Equal(t, "20240307-999", FormatToken(day, 999))
	assert.Equal(t, "20240307-1000", FormatToken(day, 1000))
}
