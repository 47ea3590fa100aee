package models

import "time"

const NewArrivalWindow = 7 * 24 * time.Hour

// ProductView is a product as served to clients, with read-time fields.
type ProductView struct {
	Product
	Image string `json:"image"`
	IsNew bool   `json:"isNew"`
}

// FirstImage returns the primary image reference, or "" when there is none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// IsStillNew reports whether a product flagged as a new arrival is still
// inside the window, counted from newArrivalDate or else createdAt.
func (p *Product) IsStillNew(now time.Time) bool {
	if !p.NewArrival {
		return false
	}
	since := p.CreatedAt
	if p.NewArrivalDate != nil {
		since = *p.NewArrivalDate
	}
	return now.Sub(since) <= NewArrivalWindow
}

func (p Product) View(now time.Time) ProductView {
	return ProductView{Product: p, Image: p.FirstImage(), IsNew: p.IsStillNew(now)}
}

func ProductViews(products []Product, now time.Time) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = products[i].View(now)
	}
	return views
}
