// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoangnmai/orderly/internal/catalog"
	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/pkg/money"
	"github.com/hoangnmai/orderly/pkg/pagination"
	"github.com/hoangnmai/orderly/pkg/uuid"
)

// # Contracts & Types

// Recorder receives checkout outcome events for the metrics pipeline.
type Recorder interface {
	RecordOrderPlaced()
	RecordOrderRejected(reason string)
}

// nopRecorder is used when no metrics collector is wired in (tests).
type nopRecorder struct{}

func (nopRecorder) RecordOrderPlaced() {}

func (nopRecorder) RecordOrderRejected(reason string) {}

// Rejection reasons reported to the metrics pipeline.
const (
	rejectEmptyItems     = "empty_items"
	rejectBadQuantity    = "bad_quantity"
	rejectUnknownProduct = "unknown_product"
)

// Service orchestrates checkout and ledger reads.
type Service struct {
	repo     Repository
	catalog  catalog.Repository
	recorder Recorder
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repo Repository, catalogRepo catalog.Repository, recorder Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		repo:     repo,
		catalog:  catalogRepo,
		recorder: recorder,
		logger:   logger,
	}
}

// # Checkout Flow

// ItemInput is one requested position in a checkout. Quantities and product
// references come from the client; prices never do.
type ItemInput struct {
	ProductID int
	Quantity  int
}

/*
PlaceOrder validates the requested items, prices them through the catalogue,
and appends a single immutable ledger entry.

Description: Every rejection happens before any write, so a failed checkout
leaves the ledger exactly as it was. The total is the sum of current
catalogue prices times quantities; client-sent totals do not exist in the
input model.

Parameters:
  - context: context.Context
  - userID: string
  - items: []ItemInput

Returns:
  - *Order: The persisted ledger entry
  - error: ValidationError (empty set, bad quantity, unknown product) or storage failures
*/
func (service *Service) PlaceOrder(context context.Context, userID string, items []ItemInput) (*Order, error) {
	if len(items) == 0 {
		service.recorder.RecordOrderRejected(rejectEmptyItems)
		return nil, apperr.ValidationError("Order must contain at least one item")
	}

	lineItems := make([]LineItem, 0, len(items))
	var total money.Cents

	for _, item := range items {
		if item.Quantity < 1 {
			service.recorder.RecordOrderRejected(rejectBadQuantity)
			return nil, apperr.ValidationError(fmt.Sprintf("Quantity for product %d must be at least 1", item.ProductID))
		}

		// Price at checkout time, straight from the catalogue
		product, err := service.catalog.GetProductByID(context, item.ProductID)
		if err != nil {
			service.recorder.RecordOrderRejected(rejectUnknownProduct)
			return nil, apperr.ValidationError(fmt.Sprintf("Unknown product %d", item.ProductID))
		}

		lineTotal, err := product.Price.MulQty(item.Quantity)
		if err != nil {
			service.recorder.RecordOrderRejected(rejectBadQuantity)
			return nil, apperr.ValidationError(fmt.Sprintf("Quantity for product %d is out of range", item.ProductID))
		}

		lineItems = append(lineItems, LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += lineTotal
	}

	order := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  lineItems,
		Total:  total,
	}

	if err := service.repo.Create(context, order); err != nil {
		return nil, fmt.Errorf("order_service_place_failed: %w", err)
	}

	service.recorder.RecordOrderPlaced()
	service.logger.Info("order_placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.String("total", total.String()),
	)

	return order, nil
}

// # Ledger Reads

/*
ListOrders returns one page of the user's purchase history, newest-first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []*Order: Page of orders
  - pagination.Meta: Metadata for the response envelope
  - error: Retrieval failures
*/
func (service *Service) ListOrders(context context.Context, userID string, params pagination.Params) ([]*Order, pagination.Meta, error) {
	listed, total, err := service.repo.ListByUser(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("order_service_list_failed: %w", err)
	}

	return listed, pagination.NewMeta(params.Page, params.Limit, total), nil
}
