// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangnmai/orderly/internal/platform/database/schema"
	"github.com/hoangnmai/orderly/internal/platform/dberr"
	"github.com/hoangnmai/orderly/pkg/money"
	"github.com/hoangnmai/orderly/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
//
// Line items are stored as a JSONB document inside the order row, so an order
// and its items commit atomically in one INSERT.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create appends the order to the ledger.

Parameters:
  - context: context.Context
  - order: *Order

Returns:
  - error: Persistence failures (nothing partial ever lands)
*/
func (repository *PostgresRepository) Create(context context.Context, order *Order) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.RefOrderEntry.Table,
		schema.RefOrderEntry.ID, schema.RefOrderEntry.UserID, schema.RefOrderEntry.Items,
		schema.RefOrderEntry.TotalCents, schema.RefOrderEntry.CreatedAt)

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("postgres_order_repo_encode_failed: %w", err)
	}

	_, err = repository.pool.Exec(context, query,
		order.ID,
		order.UserID,
		itemsJSON,
		int64(order.Total),
		order.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_order_repo_create")
	}

	return nil
}

/*
ListByUser returns one page of the user's ledger, newest-first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Order: Page of hydrated orders
  - int: Total count for the user
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]*Order, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.RefOrderEntry.Table, schema.RefOrderEntry.UserID)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_order_repo_count")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		schema.RefOrderEntry.ID, schema.RefOrderEntry.UserID, schema.RefOrderEntry.Items,
		schema.RefOrderEntry.TotalCents, schema.RefOrderEntry.CreatedAt,
		schema.RefOrderEntry.Table,
		schema.RefOrderEntry.UserID,
		schema.RefOrderEntry.CreatedAt)

	rows, err := repository.pool.Query(context, listQuery, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_order_repo_list")
	}
	defer rows.Close()

	listed := make([]*Order, 0)
	for rows.Next() {
		order := &Order{}
		var itemsJSON []byte
		var totalCents int64

		if err := rows.Scan(&order.ID, &order.UserID, &itemsJSON, &totalCents, &order.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_order_repo_scan")
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, 0, fmt.Errorf("postgres_order_repo_decode_failed: %w", err)
		}

		order.Total = money.Cents(totalCents)
		listed = append(listed, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_order_repo_rows")
	}

	return listed, total, nil
}
