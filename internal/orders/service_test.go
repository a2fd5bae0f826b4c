// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package orders_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangnmai/orderly/internal/catalog"
	"github.com/hoangnmai/orderly/internal/orders"
	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/pkg/money"
	"github.com/hoangnmai/orderly/pkg/pagination"
)

// # In-Memory Fakes

type fakeOrderRepository struct {
	stored []*orders.Order
}

func (repo *fakeOrderRepository) Create(_ context.Context, order *orders.Order) error {
	copied := *order
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	repo.stored = append(repo.stored, &copied)
	return nil
}

func (repo *fakeOrderRepository) ListByUser(_ context.Context, userID string, params pagination.Params) ([]*orders.Order, int, error) {
	owned := make([]*orders.Order, 0)
	for _, order := range repo.stored {
		if order.UserID == userID {
			owned = append(owned, order)
		}
	}

	// Newest-first, matching the SQL ORDER BY
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	return owned[start:end], total, nil
}

func newTestService() (*orders.Service, *fakeOrderRepository) {
	repo := &fakeOrderRepository{}
	catalogRepo := catalog.NewMemoryRepository(catalog.DefaultProducts())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return orders.NewService(repo, catalogRepo, nil, logger), repo
}

// # Tests

/*
TestService_PlaceOrder checks the priced, snapshotted ledger entry produced
by a valid checkout.
*/
func TestService_PlaceOrder(t *testing.T) {
	service, repo := newTestService()

	order, err := service.PlaceOrder(context.Background(), "user-1", []orders.ItemInput{
		{ProductID: 1, Quantity: 2}, // Wireless Mouse 29.99 x2
		{ProductID: 4, Quantity: 1}, // USB-C Hub 49.99
	})
	require.NoError(t, err)

	// Total is computed from the catalogue, item by item
	assert.Equal(t, money.Cents(2999*2+4999), order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Wireless Mouse", order.Items[0].Name)
	assert.Equal(t, money.Cents(2999), order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)

	require.Len(t, repo.stored, 1)
	assert.Equal(t, "user-1", repo.stored[0].UserID)
}

/*
TestService_PlaceOrder_Rejections verifies every invalid checkout is refused
before anything reaches the ledger.
*/
func TestService_PlaceOrder_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		items []orders.ItemInput
	}{
		{"empty_items", []orders.ItemInput{}},
		{"zero_quantity", []orders.ItemInput{{ProductID: 1, Quantity: 0}}},
		{"negative_quantity", []orders.ItemInput{{ProductID: 1, Quantity: -3}}},
		{"unknown_product", []orders.ItemInput{{ProductID: 999, Quantity: 1}}},
		{"valid_then_unknown", []orders.ItemInput{{ProductID: 1, Quantity: 1}, {ProductID: 999, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()

			_, err := service.PlaceOrder(context.Background(), "user-1", tt.items)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

			// Nothing landed in the ledger
			assert.Empty(t, repo.stored)
		})
	}
}

/*
TestService_ListOrders covers newest-first ordering and pagination metadata.
*/
func TestService_ListOrders(t *testing.T) {
	service, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := service.PlaceOrder(context.Background(), "user-1", []orders.ItemInput{
			{ProductID: i + 1, Quantity: 1},
		})
		require.NoError(t, err)
	}

	// Another user's order must not leak in
	_, err := service.PlaceOrder(context.Background(), "user-2", []orders.ItemInput{
		{ProductID: 5, Quantity: 1},
	})
	require.NoError(t, err)

	listed, meta, err := service.ListOrders(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, listed, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	for _, order := range listed {
		assert.Equal(t, "user-1", order.UserID)
	}
}
