package catalog

import "context"

type Repository interface {
	ListProducts(context context.Context) ([]Product, error)
	GetProductByID(context context.Context, id int) (*Product, error)
}
