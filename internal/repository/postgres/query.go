package postgres

import (
	"strconv"
	"strings"

	"storefront-api/internal/models"
)

// likeEscaper makes a search term match literally inside ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// productFilter renders the WHERE clause for q with positional args.
func productFilter(q models.ProductQuery) (string, []any) {
	var conds []string
	var args []any
	argCount := 0
	next := func(v any) string {
		argCount++
		args = append(args, v)
		return "$" + strconv.Itoa(argCount)
	}

	if q.Category != "" {
		conds = append(conds, "category = "+next(q.Category))
	}
	if q.Featured {
		conds = append(conds, "featured = TRUE")
	}
	if q.NewArrival {
		conds = append(conds, "new_arrival = TRUE")
	}
	if q.Search != "" {
		p := next("%" + likeEscaper.Replace(q.Search) + "%")
		conds = append(conds, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if q.MinPrice != nil {
		conds = append(conds, "price >= "+next(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		conds = append(conds, "price <= "+next(*q.MaxPrice))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func productOrder(sort models.SortOrder) string {
	switch sort {
	case models.SortOldest:
		return " ORDER BY created_at ASC, seq ASC"
	case models.SortPriceAsc:
		return " ORDER BY price ASC, seq ASC"
	case models.SortPriceDesc:
		return " ORDER BY price DESC, seq ASC"
	case models.SortRating:
		return " ORDER BY ratings_average DESC, seq ASC"
	default:
		return " ORDER BY created_at DESC, seq ASC"
	}
}

// productListQuery returns the page query and the matching count query.
func productListQuery(q models.ProductQuery) (string, string, []any) {
	where, args := productFilter(q)
	count := "SELECT COUNT(*) FROM products" + where

	list := "SELECT " + productColumns + " FROM products" + where + productOrder(q.Sort)
	if q.Limit > 0 {
		list += " LIMIT " + strconv.Itoa(q.Limit) + " OFFSET " + strconv.Itoa(q.Offset())
	}
	return list, count, args
}
