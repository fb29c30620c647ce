package domain

type QuoteLine struct {
	ProductID int64
	Name      string
	Quantity  int
	// CartPrice is the unit price captured when the line was added.
	CartPrice float64
	UnitPrice float64
	LineTotal float64
}

// Repriced reports whether the catalog price moved since the line was added.
func (l QuoteLine) Repriced() bool {
	return l.CartPrice != l.UnitPrice
}

type Quote struct {
	Lines []QuoteLine
	Total float64
}

type ReceiptItem struct {
	ProductID int64
	Quantity  int
}

type Receipt struct {
	OrderID int64
	Status  string
	Total   float64
	Items   []ReceiptItem
}
