package models

import (
	"net/url"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

// ParseSort falls back to newest-first for anything unrecognised.
func ParseSort(s string) SortOrder {
	switch SortOrder(s) {
	case SortOldest, SortPriceAsc, SortPriceDesc, SortRating:
		return SortOrder(s)
	}
	return SortNewest
}

// ProductQuery is a conjunction of optional catalog predicates plus an
// ordering and a page window. Limit 0 means the whole result set.
type ProductQuery struct {
	Category   string
	Featured   bool
	NewArrival bool
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       SortOrder
	Page       int
	Limit      int
}

// ParseProductQuery reads catalog parameters from a query string. Malformed
// numeric values are ignored rather than rejected.
func ParseProductQuery(values url.Values) ProductQuery {
	q := ProductQuery{
		Category:   strings.TrimSpace(values.Get("category")),
		Featured:   values.Get("featured") == "true",
		NewArrival: values.Get("newArrival") == "true",
		Search:     strings.TrimSpace(values.Get("search")),
		Sort:       ParseSort(values.Get("sort")),
		Page:       1,
	}
	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil {
		q.MaxPrice = &v
	}
	if v, err := strconv.Atoi(values.Get("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v > 0 {
		q.Limit = v
	}
	return q
}

func (q ProductQuery) Matches(p *Product) bool {
	if q.Category != "" && string(p.Category) != q.Category {
		return false
	}
	if q.Featured && !p.Featured {
		return false
	}
	if q.NewArrival && !p.NewArrival {
		return false
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

// Less orders a before b under the query's sort; equal keys fall back to
// insertion order so every ordering is total.
func (q ProductQuery) Less(a, b *Product) bool {
	switch q.Sort {
	case SortOldest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortPriceAsc:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case SortPriceDesc:
		if a.Price != b.Price {
			return a.Price > b.Price
		}
	case SortRating:
		if a.Ratings.Average != b.Ratings.Average {
			return a.Ratings.Average > b.Ratings.Average
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.Seq < b.Seq
}

func (q ProductQuery) Offset() int {
	if q.Limit <= 0 || q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Window returns the [start, end) bounds of the requested page within a
// result set of n items.
func (q ProductQuery) Window(n int) (int, int) {
	if q.Limit <= 0 {
		return 0, n
	}
	start := q.Offset()
	if start > n {
		start = n
	}
	end := start + q.Limit
	if end > n {
		end = n
	}
	return start, end
}

func (q ProductQuery) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	if q.Limit <= 0 {
		return 1
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}

func (q ProductQuery) CurrentPage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}
