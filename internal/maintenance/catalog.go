package maintenance

import (
	"time"

	"storefront-api/internal/models"
)

func price(v float64) *float64 { return &v }

// SampleCatalog is the demo catalog loaded by the seed utility. Products
// flagged as new arrivals are stamped with now.
func SampleCatalog(now time.Time) []models.Product {
	products := []models.Product{
		{
			Name:          "Gold Plated Necklace Set",
			Description:   "Beautiful gold plated necklace with matching earrings. Perfect for weddings and special occasions.",
			Price:         2499,
			OriginalPrice: price(3500),
			Category:      models.CategoryJewelry,
			Subcategory:   "Necklace",
			Images:        []string{"https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=500"},
			Features:      []string{"24k Gold Plated", "Matching Earrings included", "Premium Craftsmanship", "Elegant Design"},
			Stock:         25,
			NewArrival:    true,
			Ratings:       models.Ratings{Average: 4.5, Count: 120},
		},
		{
			Name:        "Diamond Studded Earrings",
			Description: "Elegant diamond studded earrings with 18k gold finish.",
			Price:       3999,
			Category:    models.CategoryJewelry,
			Subcategory: "Earrings",
			Images:      []string{"https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=500"},
			Stock:       15,
			Ratings:     models.Ratings{Average: 4.8, Count: 85},
		},
		{
			Name:        "Silver Bracelet",
			Description: "Pure silver bracelet with intricate design work.",
			Price:       1299,
			Category:    models.CategoryJewelry,
			Subcategory: "Bracelet",
			Images:      []string{"https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=500"},
			Stock:       30,
			Ratings:     models.Ratings{Average: 4.2, Count: 65},
		},
		{
			Name:        "Pearl Pendant Set",
			Description: "Classic pearl pendant with chain and earrings.",
			Price:       1899,
			Category:    models.CategoryJewelry,
			Subcategory: "Pendant",
			Images:      []string{"https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=500"},
			Stock:       20,
			Ratings:     models.Ratings{Average: 4.6, Count: 95},
		},
		{
			Name:        "Traditional Bangles Set",
			Description: "Set of 6 traditional gold plated bangles.",
			Price:       1599,
			Category:    models.CategoryJewelry,
			Subcategory: "Bangles",
			Images:      []string{"https://images.unsplash.com/photo-1602751584552-8ba73aad10e1?w=500"},
			Stock:       40,
			Ratings:     models.Ratings{Average: 4.3, Count: 110},
		},
		{
			Name:          "Banarasi Silk Saree",
			Description:   "Pure Banarasi silk saree with golden zari work. Traditional and elegant.",
			Price:         4999,
			OriginalPrice: price(8500),
			Category:      models.CategorySarees,
			Subcategory:   "Silk",
			Images:        []string{"https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=500"},
			Features:      []string{"Pure Banarasi Silk", "Golden Zari Work", "Includes Blouse Piece", "Traditional Design"},
			Stock:         12,
			NewArrival:    true,
			Ratings:       models.Ratings{Average: 4.9, Count: 150},
		},
		{
			Name:        "Cotton Saree with Blouse",
			Description: "Comfortable cotton saree perfect for daily wear with matching blouse piece.",
			Price:       899,
			Category:    models.CategorySarees,
			Subcategory: "Cotton",
			Images:      []string{"https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?w=500"},
			Stock:       50,
			Ratings:     models.Ratings{Average: 4.1, Count: 200},
		},
		{
			Name:        "Georgette Saree",
			Description: "Lightweight georgette saree with beautiful prints.",
			Price:       1299,
			Category:    models.CategorySarees,
			Subcategory: "Georgette",
			Images:      []string{"https://images.unsplash.com/photo-1606800052052-a08af7148866?w=500"},
			Stock:       35,
			Ratings:     models.Ratings{Average: 4.4, Count: 88},
		},
		{
			Name:        "Premium Notebook Set",
			Description: "Set of 5 premium quality notebooks with 200 pages each.",
			Price:       499,
			Category:    models.CategoryStationery,
			Subcategory: "Notebooks",
			Images:      []string{"https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=500"},
			Stock:       100,
			Ratings:     models.Ratings{Average: 4.3, Count: 250},
		},
		{
			Name:        "Sticky Notes Pack",
			Description: "Colorful sticky notes pack with 6 different colors.",
			Price:       199,
			Category:    models.CategoryStationery,
			Subcategory: "Office Supplies",
			Images:      []string{"https://images.unsplash.com/photo-1590859808308-3d2d9c515b1a?w=500"},
			Stock:       200,
			Ratings:     models.Ratings{Average: 4.0, Count: 140},
		},
		{
			Name:        "Desk Organizer Set",
			Description: "Wooden desk organizer with multiple compartments.",
			Price:       799,
			Category:    models.CategoryStationery,
			Subcategory: "Office Supplies",
			Images:      []string{"https://images.unsplash.com/photo-1611269154421-4e27233ac5c7?w=500"},
			Stock:       60,
			Ratings:     models.Ratings{Average: 4.4, Count: 90},
		},
	}

	for i := range products {
		if products[i].NewArrival {
			listed := now
			products[i].NewArrivalDate = &listed
		}
	}
	return products
}
