package domain

import "sync"

// MaxLineQuantity bounds a single line's quantity.
const MaxLineQuantity = 10000

// CartLine is one product's presence in a cart. Quantity stays positive while
// the line exists.
type CartLine struct {
	ItemID    string
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// Cart is an ordered set of lines unique by ItemID. It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(itemID string) int {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// AddItem merges line into an existing line with the same ItemID, or appends it.
// A merged line keeps the unit price it was first added at. AddItem reports false
// and leaves the cart unchanged when the quantity is non-positive or the line
// would exceed MaxLineQuantity.
func (c *Cart) AddItem(line CartLine) bool {
	if line.Quantity <= 0 || line.Quantity > MaxLineQuantity {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(line.ItemID); i >= 0 {
		if c.lines[i].Quantity > MaxLineQuantity-line.Quantity {
			return false
		}
		c.lines[i].Quantity += line.Quantity
		return true
	}
	c.lines = append(c.lines, line)
	return true
}

// RemoveItem deletes the line and reports whether it was present.
func (c *Cart) RemoveItem(itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(itemID)
}

func (c *Cart) removeLocked(itemID string) bool {
	i := c.indexOf(itemID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// UpdateQuantity sets the line's quantity; quantity <= 0 removes the line.
// It returns false when no line matches. Quantities above MaxLineQuantity are
// stored as MaxLineQuantity.
func (c *Cart) UpdateQuantity(itemID string, quantity int) bool {
	quantity = min(quantity, MaxLineQuantity)

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(itemID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		return c.removeLocked(itemID)
	}
	c.lines[i].Quantity = quantity
	return true
}

// ListItems returns a copy of the lines in insertion order.
func (c *Cart) ListItems() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtract takes each given line's quantity off the matching line, dropping
// lines that reach zero. Lines added after the snapshot was taken survive.
func (c *Cart) Subtract(lines []CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range lines {
		i := c.indexOf(l.ItemID)
		if i < 0 {
			continue
		}
		if c.lines[i].Quantity <= l.Quantity {
			c.removeLocked(l.ItemID)
			continue
		}
		c.lines[i].Quantity -= l.Quantity
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total is the sum of quantity x unit price over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += float64(l.Quantity) * l.UnitPrice
	}
	return total
}
