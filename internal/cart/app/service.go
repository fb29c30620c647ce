package app

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/cart/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

type session struct {
	cart    *domain.Cart
	touched time.Time
}

// Service keeps one cart per session in process memory.
type Service struct {
	pricer ProductPricer
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewService(pricer ProductPricer, ttl time.Duration) *Service {
	return &Service{
		pricer:   pricer,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// ItemID derives a line identifier from a product id.
func ItemID(productID int64) string {
	return strconv.FormatInt(productID, 10)
}

// cart returns the session's cart, creating it when create is set.
// A nil cart means the session has none yet.
func (s *Service) cart(sessionID string, create bool) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		if !create {
			return nil
		}
		sess = &session{cart: domain.NewCart()}
		s.sessions[sessionID] = sess
	}
	sess.touched = s.now()
	return sess.cart
}

func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, apperr.Invalid("quantity must be positive, got %d", quantity)
	}
	if quantity > domain.MaxLineQuantity {
		return domain.CartLine{}, apperr.Invalid("quantity must be at most %d, got %d", domain.MaxLineQuantity, quantity)
	}
	if productID <= 0 {
		return domain.CartLine{}, apperr.Invalid("product_id must be positive, got %d", productID)
	}

	// price lookup happens before any cart lock is taken
	price, err := s.pricer.UnitPrice(ctx, productID)
	if err != nil {
		return domain.CartLine{}, err
	}

	line := domain.CartLine{
		ItemID:    ItemID(productID),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: price,
	}
	if !s.cart(sessionID, true).AddItem(line) {
		return domain.CartLine{}, apperr.Invalid("product %d: cart quantity would exceed %d", productID, domain.MaxLineQuantity)
	}
	return line, nil
}

func (s *Service) Items(sessionID string) []domain.CartLine {
	c := s.cart(sessionID, false)
	if c == nil {
		return []domain.CartLine{}
	}
	return c.ListItems()
}

func (s *Service) UpdateQuantity(sessionID, itemID string, quantity int) bool {
	c := s.cart(sessionID, false)
	if c == nil {
		return false
	}
	return c.UpdateQuantity(itemID, quantity)
}

func (s *Service) RemoveItem(sessionID, itemID string) bool {
	c := s.cart(sessionID, false)
	if c == nil {
		return false
	}
	return c.RemoveItem(itemID)
}

// Subtract removes the given quantities from the session's cart, leaving
// anything added since the lines were read.
func (s *Service) Subtract(sessionID string, lines []domain.CartLine) {
	if c := s.cart(sessionID, false); c != nil {
		c.Subtract(lines)
	}
}

func (s *Service) Clear(sessionID string) {
	if c := s.cart(sessionID, false); c != nil {
		c.Clear()
	}
}

func (s *Service) Total(sessionID string) float64 {
	c := s.cart(sessionID, false)
	if c == nil {
		return 0
	}
	return c.Total()
}

// Sessions reports how many carts are held.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops carts that have not been touched within the TTL and returns how many went.
func (s *Service) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.touched) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Service) Run(ctx context.Context, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			s.Sweep(now)
		}
	}
}
