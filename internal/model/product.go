package model

import "time"

// Category buckets products for storefront navigation.
type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategorySports      Category = "sports"
	CategoryNewArrivals Category = "new_arrivals"
)

// ValidCategory reports whether c is a known product category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryMen, CategoryWomen, CategorySports, CategoryNewArrivals:
		return true
	}
	return false
}

// SizeStock is the unit count available for one size of a product.
// Stock never goes negative; the repository enforces this with a
// conditional decrement.
type SizeStock struct {
	Size  string `json:"size" db:"size"`
	Stock int    `json:"stock" db:"stock"`
}

// Product represents a catalogue entry with per-size stock counters.
// Name and Description are keyed by language code ("en", "ar", "tr").
type Product struct {
	ID          string            `json:"id" db:"id"`
	SKU         string            `json:"sku" db:"sku"`
	Name        map[string]string `json:"name" db:"name"`
	Description map[string]string `json:"description" db:"description"`
	Price       float64           `json:"price" db:"price"`
	Category    Category          `json:"category" db:"category"`
	Images      []string          `json:"images" db:"images"`
	SizesStock  []SizeStock       `json:"sizesStock" db:"sizes_stock"`
	Featured    bool              `json:"featured" db:"featured"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
}

// DisplayName returns the English name, falling back to any localisation.
func (p *Product) DisplayName() string {
	if n, ok := p.Name["en"]; ok && n != "" {
		return n
	}
	for _, n := range p.Name {
		if n != "" {
			return n
		}
	}
	return p.SKU
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	SKU         string            `json:"sku"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Price       float64           `json:"price"`
	Category    Category          `json:"category"`
	Images      []string          `json:"images"`
	SizesStock  []SizeStock       `json:"sizesStock"`
	Featured    bool              `json:"featured"`
}

// SearchRequest is the payload for product search.
type SearchRequest struct {
	Query    string   `json:"query"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
	SortBy   string   `json:"sortBy"` // created_at, price_asc, price_desc, name
	Page     int      `json:"page"`
	Limit    int      `json:"limit"`
}

// SearchResponse is a paginated product search result.
type SearchResponse struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
