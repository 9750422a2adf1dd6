package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"washplane/internal/store"
)

func (s *Store) CreateService(ctx context.Context, service *store.Service) error {
	query := `
		INSERT INTO services (id, business_id, name, price, min_time, max_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		service.ID,
		service.BusinessID,
		service.Name,
		service.Price,
		service.MinTime,
		service.MaxTime,
		service.IsActive,
		service.CreatedAt,
	)
	return err
}

func (s *Store) GetServiceByID(ctx context.Context, id uuid.UUID) (*store.Service, error) {
	query := `
		SELECT id, business_id, name, price, min_time, max_time, is_active, created_at
		FROM services WHERE id = $1
	`

	var svc store.Service
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&svc.ID, &svc.BusinessID, &svc.Name, &svc.Price, &svc.MinTime, &svc.MaxTime, &svc.IsActive, &svc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// GetActiveServicesByIDs returns the active services among ids for a business.
// Results follow the order of ids so the job snapshot preserves the customer's
// selection order.
func (s *Store) GetActiveServicesByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]store.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, business_id, name, price, min_time, max_time, is_active, created_at
		FROM services
		WHERE business_id = $1 AND is_active AND id = ANY($2)
	`

	rows, err := s.db.QueryContext(ctx, query, businessID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]store.Service, len(ids))
	for rows.Next() {
		var svc store.Service
		if err := rows.Scan(&svc.ID, &svc.BusinessID, &svc.Name, &svc.Price, &svc.MinTime, &svc.MaxTime, &svc.IsActive, &svc.CreatedAt); err != nil {
			return nil, err
		}
		byID[svc.ID] = svc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	services := make([]store.Service, 0, len(ids))
	for _, id := range ids {
		if svc, ok := byID[id]; ok {
			services = append(services, svc)
		}
	}
	return services, nil
}

func (s *Store) ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]store.Service, error) {
	query := `
		SELECT id, business_id, name, price, min_time, max_time, is_active, created_at
		FROM services
		WHERE business_id = $1 AND ($2 = FALSE OR is_active)
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, businessID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []store.Service
	for rows.Next() {
		var svc store.Service
		if err := rows.Scan(&svc.ID, &svc.BusinessID, &svc.Name, &svc.Price, &svc.MinTime, &svc.MaxTime, &svc.IsActive, &svc.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (s *Store) UpdateService(ctx context.Context, service *store.Service) error {
	query := `
		UPDATE services
		SET name = $1, price = $2, min_time = $3, max_time = $4, is_active = $5
		WHERE id = $6 AND business_id = $7
	`

	result, err := s.db.ExecContext(ctx, query,
		service.Name,
		service.Price,
		service.MinTime,
		service.MaxTime,
		service.IsActive,
		service.ID,
		service.BusinessID,
	)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
