package catalog

import (
	"context"

	"github.com/hoangnmai/orderly/internal/platform/apperr"
	"github.com/hoangnmai/orderly/pkg/slug"
)

// MemoryRepository serves the catalogue from an immutable in-process table.
//
// The product list is fixed at construction and never mutated afterwards, so
// concurrent reads need no locking.
type MemoryRepository struct {
	products []Product
	byID     map[int]*Product
}

// NewMemoryRepository builds the repository from a seed list. Slugs are
// derived from the product names.
func NewMemoryRepository(seed []Product) *MemoryRepository {
	repository := &MemoryRepository{
		products: make([]Product, len(seed)),
		byID:     make(map[int]*Product, len(seed)),
	}

	for i, product := range seed {
		product.Slug = slug.From(product.Name)
		if product.Image == "" {
			product.Image = "/images/" + product.Slug + ".jpg"
		}
		repository.products[i] = product
		repository.byID[product.ID] = &repository.products[i]
	}

	return repository
}

// DefaultProducts returns the launch catalogue.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Mouse", Description: "Ergonomic 2.4GHz wireless mouse", Price: 2999},
		{ID: 2, Name: "Mechanical Keyboard", Description: "Hot-swappable tenkeyless board", Price: 7999},
		{ID: 3, Name: "Noise Cancelling Headphones", Description: "Over-ear ANC headphones", Price: 12999},
		{ID: 4, Name: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI", Price: 4999},
		{ID: 5, Name: "Portable SSD", Description: "1TB USB 3.2 portable drive", Price: 9999},
	}
}

func (repository *MemoryRepository) ListProducts(context context.Context) ([]Product, error) {
	// Copy so callers cannot mutate the shared table.
	listed := make([]Product, len(repository.products))
	copy(listed, repository.products)
	return listed, nil
}

func (repository *MemoryRepository) GetProductByID(context context.Context, id int) (*Product, error) {
	product, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}

	// Return a copy for the same reason as ListProducts.
	found := *product
	return &found, nil
}
