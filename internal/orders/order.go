// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

/*
Package orders implements the append-only purchase ledger.

An order is written once at checkout and never mutated afterwards. Totals are
always computed server-side from the catalogue at placement time; nothing a
client sends can influence the charged amount.
*/
package orders

import (
	"time"

	"github.com/hoangnmai/orderly/pkg/money"
)

// # Domain Entities

// LineItem is one product position within an order. The name and unit price
// are snapshotted at placement time so later catalogue edits cannot rewrite
// purchase history.
type LineItem struct {
	ProductID int         `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"unit_price"`
}

// Order is a single immutable ledger entry.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"-"` // The ledger is only ever served to its owner.
	Items     []LineItem  `json:"items"`
	Total     money.Cents `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}

// # Field Identifiers

const (
	FieldItems     = "items"
	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
)
