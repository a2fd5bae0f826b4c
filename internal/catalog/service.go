package catalog

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListProducts(context context.Context) ([]Product, error) {
	return service.repo.ListProducts(context)
}

func (service *Service) GetProduct(context context.Context, id int) (*Product, error) {
	return service.repo.GetProductByID(context, id)
}
