package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"washplane/internal/store"
)

func (s *Store) CreateCustomer(ctx context.Context, customer *store.Customer) error {
	query := `
		INSERT INTO customers (id, business_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		customer.ID,
		customer.BusinessID,
		customer.Name,
		customer.Phone,
		customer.CreatedAt,
	)
	return err
}

func (s *Store) GetCustomerByID(ctx context.Context, id uuid.UUID) (*store.Customer, error) {
	query := "SELECT id, business_id, name, phone, created_at FROM customers WHERE id = $1"

	var c store.Customer
	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.BusinessID, &c.Name, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCar(ctx context.Context, car *store.Car) error {
	query := `
		INSERT INTO cars (id, business_id, customer_id, plate_number, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		car.ID,
		car.BusinessID,
		car.CustomerID,
		car.PlateNumber,
		car.Model,
		car.CreatedAt,
	)
	return err
}

func (s *Store) GetCarByID(ctx context.Context, id uuid.UUID) (*store.Car, error) {
	query := "SELECT id, business_id, customer_id, plate_number, model, created_at FROM cars WHERE id = $1"

	var c store.Car
	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.BusinessID, &c.CustomerID, &c.PlateNumber, &c.Model, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
