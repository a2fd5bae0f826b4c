// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package orders

import (
	"context"

	"github.com/hoangnmai/orderly/pkg/pagination"
)

// Repository defines the data access contract for the order ledger.
type Repository interface {

	/*
		Create appends a new order row. The write is a single INSERT; a
		failure leaves the ledger untouched.

		Parameters:
		  - context: context.Context
		  - order: *Order

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, order *Order) error

	/*
		ListByUser returns the user's orders newest-first, plus the total
		count for pagination metadata.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []*Order: Page of orders
		  - int: Total order count for the user
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string, params pagination.Params) ([]*Order, int, error)
}
