package app

import (
	"context"
	"math"
	"strings"

	"github.com/dwikikusuma/phone-shop/internal/catalog/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Product{}, apperr.Invalid("name is required")
	}
	if err := validatePrice(p.Price); err != nil {
		return domain.Product{}, err
	}
	if p.Stock < 0 {
		return domain.Product{}, apperr.Invalid("stock cannot be negative, got %d", p.Stock)
	}
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) == "" {
		p.ImageURL = nil
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, apperr.NotFound("Product with ID %d not found", id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Product{}, apperr.Invalid("name cannot be empty")
		}
		patch.Name = &name
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return domain.Product{}, err
		}
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return domain.Product{}, apperr.Invalid("stock cannot be negative, got %d", *patch.Stock)
	}
	if id <= 0 {
		return domain.Product{}, apperr.NotFound("Product with ID %d not found", id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountProducts(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return apperr.Invalid("price must be a non-negative number, got %v", price)
	}
	return nil
}
