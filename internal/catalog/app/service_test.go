package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dwikikusuma/phone-shop/internal/catalog/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

type fakeRepo struct {
	updated *domain.ProductPatch
}

func (fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = 1
	return p, nil
}
func (fakeRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	return domain.Product{}, apperr.NotFound("Product with ID %d not found", id)
}
func (fakeRepo) List(ctx context.Context) ([]domain.Product, error) { return nil, nil }
func (f *fakeRepo) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	f.updated = &patch
	return patch.Apply(domain.Product{ID: id, Name: "old"}), nil
}
func (fakeRepo) Delete(ctx context.Context, id int64) (bool, error) { return true, nil }
func (fakeRepo) Count(ctx context.Context) (int, error)              { return 0, nil }

func ptr[T any](v T) *T { return &v }

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "   ", Price: 100})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Pixel 8", Price: -1})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("nan price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Pixel 8", Price: math.NaN()})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Pixel 8", Price: 10, Stock: -3})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("zero price is allowed, name trimmed, blank image dropped", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), domain.Product{Name: "  Freebie ", ImageURL: ptr(" ")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Freebie" || p.ImageURL != nil {
			t.Fatalf("got %+v", p)
		}
	})
}

func TestUpdateProductValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	t.Run("blank name -> invalid", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), 1, domain.ProductPatch{Name: ptr(" ")})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), 1, domain.ProductPatch{Stock: ptr(-1)})
		if !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("non-positive id -> not found", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), 0, domain.ProductPatch{Stock: ptr(1)})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("only supplied fields reach the repo", func(t *testing.T) {
		p, err := svc.UpdateProduct(context.Background(), 7, domain.ProductPatch{Price: ptr(899.99)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updated == nil || repo.updated.Name != nil || p.Name != "old" || p.Price != 899.99 {
			t.Fatalf("got patch %+v product %+v", repo.updated, p)
		}
	})
}

func TestProductPatchApply(t *testing.T) {
	img := "https://example.com/a.jpg"
	base := domain.Product{ID: 1, Name: "iPhone 15", Description: "d", Price: 799.99, Stock: 75, ImageURL: &img}

	got := domain.ProductPatch{Stock: ptr(70)}.Apply(base)
	if got.Name != base.Name || got.Price != base.Price || got.Stock != 70 || got.ImageURL == nil {
		t.Fatalf("unexpected merge result %+v", got)
	}

	cleared := domain.ProductPatch{ImageURL: ptr("")}.Apply(base)
	if cleared.ImageURL != nil {
		t.Fatalf("expected image url to be cleared, got %v", *cleared.ImageURL)
	}
}
