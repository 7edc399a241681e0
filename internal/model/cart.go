package model

import "time"

// CartItem is one (product, size, quantity) selection.
type CartItem struct {
	ProductID string `json:"productId" db:"product_id"`
	Size      string `json:"size" db:"size"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

// Cart holds a user's pending selections. One cart per user; at most one
// line item per (product, size) pair.
type Cart struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// AddToCartRequest is the payload for adding or merging a line item.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}
