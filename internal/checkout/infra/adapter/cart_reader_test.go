package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	cartapp "github.com/dwikikusuma/phone-shop/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/phone-shop/internal/checkout/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPricer map[int64]float64

func (f fixedPricer) UnitPrice(ctx context.Context, productID int64) (float64, error) {
	return f[productID], nil
}

type fixedCatalog map[int64]float64

func (f fixedCatalog) GetProduct(ctx context.Context, productID int64) (checkoutapp.Product, error) {
	return checkoutapp.Product{ID: productID, Price: f[productID]}, nil
}

// gatedPlacer blocks PlaceOrder until release is closed.
type gatedPlacer struct {
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	placed []checkoutapp.CartItem
}

func (p *gatedPlacer) PlaceOrder(ctx context.Context, userID int64, items []checkoutapp.CartItem) (checkoutapp.PlacedOrder, error) {
	close(p.entered)
	<-p.release
	p.mu.Lock()
	p.placed = items
	p.mu.Unlock()
	return checkoutapp.PlacedOrder{ID: 1, Status: "pending"}, nil
}

func TestCheckoutKeepsLinesAddedWhilePlacing(t *testing.T) {
	ctx := context.Background()
	prices := map[int64]float64{1: 900, 2: 25}
	cartSvc := cartapp.NewService(fixedPricer(prices), time.Hour)
	placer := &gatedPlacer{entered: make(chan struct{}), release: make(chan struct{})}
	svc := checkoutapp.NewService(NewCartServiceReader(cartSvc), fixedCatalog(prices), placer, 2)

	_, err := cartSvc.AddItem(ctx, "s1", 1, 2)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(ctx, "s1", 7)
		done <- err
	}()

	<-placer.entered
	_, err = cartSvc.AddItem(ctx, "s1", 1, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "s1", 2, 3)
	require.NoError(t, err)
	close(placer.release)
	require.NoError(t, <-done)

	require.Len(t, placer.placed, 1)
	assert.Equal(t, 2, placer.placed[0].Quantity)

	items := cartSvc.Items("s1")
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(2), items[1].ProductID)
	assert.Equal(t, 3, items[1].Quantity)
}
