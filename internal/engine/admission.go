package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"washplane/internal/store"
)

// BusinessSource resolves the tenant whose capacity policy applies.
type BusinessSource interface {
	GetBusinessByID(ctx context.Context, id uuid.UUID) (*store.Business, error)
}

// JobCounter provides the fresh counts the engine decides on.
// The tx parameter lets callers run the count inside the same transaction
// that will insert the job, so the per-business advisory lock covers both.
type JobCounter interface {
	CountActiveJobs(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) (int64, error)
	CountJobsCreatedSince(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID, since time.Time) (int64, error)
}

// Decision is the outcome of a capacity check. A rejection is a normal
// business-rule outcome, not an error; Reason is user-facing and returned
// verbatim.
type Decision struct {
	Admitted bool
	Reason   string
}

// Engine computes lifecycle decisions against the store.
type Engine struct {
	businesses BusinessSource
	jobs       JobCounter
}

func New(businesses BusinessSource, jobs JobCounter) *Engine {
	return &Engine{businesses: businesses, jobs: jobs}
}

// CanAcceptNewJob decides whether a business may take on a new job right now.
// A SINGLE-capacity business admits only with zero active jobs; a MULTIPLE
// one admits while the active count is below MaxConcurrentJobs. The active
// count is read fresh on every call so finished jobs free capacity
// immediately.
func (e *Engine) CanAcceptNewJob(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) (Decision, error) {
	business, err := e.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Decision{}, ErrBusinessNotFound
		}
		return Decision{}, fmt.Errorf("resolve business: %w", err)
	}

	active, err := e.jobs.CountActiveJobs(ctx, tx, businessID)
	if err != nil {
		return Decision{}, fmt.Errorf("count active jobs: %w", err)
	}

	if business.Capacity == store.CapacitySingle {
		if active >= 1 {
			return Decision{Reason: "Another job is already in progress"}, nil
		}
		return Decision{Admitted: true}, nil
	}

	if active >= int64(business.MaxConcurrentJobs) {
		return Decision{
			Reason: fmt.Sprintf("Maximum capacity of %d jobs reached", business.MaxConcurrentJobs),
		}, nil
	}
	return Decision{Admitted: true}, nil
}
