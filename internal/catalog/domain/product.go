package domain

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    *string
}

// ProductPatch carries the fields of a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
}

func (p ProductPatch) Apply(dst Product) Product {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			dst.ImageURL = nil
		} else {
			v := *p.ImageURL
			dst.ImageURL = &v
		}
	}
	return dst
}
