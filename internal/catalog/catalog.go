package catalog

import (
	"github.com/hoangnmai/orderly/pkg/money"
)

// Product is a purchasable item in the store catalogue.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description,omitempty"`
	Price       money.Cents `json:"price"`
	Image       string      `json:"image,omitempty"`
}
