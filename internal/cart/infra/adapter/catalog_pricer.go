package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/phone-shop/internal/catalog/app"
)

type CatalogPricer struct {
	svc *catalogapp.Service
}

func NewCatalogPricer(svc *catalogapp.Service) *CatalogPricer {
	return &CatalogPricer{svc: svc}
}

func (p *CatalogPricer) UnitPrice(ctx context.Context, productID int64) (float64, error) {
	product, err := p.svc.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Price, nil
}
