package orders

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (int64, error)
}

var _ Querier = (*Queries)(nil)

type Order struct {
	ID             string             `json:"id"`
	RestaurantName string             `json:"restaurant_name"`
	Status         string             `json:"status"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

const createOrder = `
INSERT INTO orders (id, restaurant_name, status)
VALUES ($1, $2, $3)
RETURNING id, restaurant_name, status, created_at, updated_at
`

type CreateOrderParams struct {
	ID             string `json:"id"`
	RestaurantName string `json:"restaurant_name"`
	Status         string `json:"status"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder, arg.ID, arg.RestaurantName, arg.Status)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.RestaurantName,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status <> $2
`

type UpdateOrderStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateOrderStatus returns the number of rows changed; zero means the order
// is unknown or already carries the status.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateOrderStatus, arg.ID, arg.Status)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
