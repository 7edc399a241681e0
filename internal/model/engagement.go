package model

import "time"

// ProductReview is a customer rating with comment, one per product per user.
type ProductReview struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AddReviewRequest is the payload for submitting a review.
type AddReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ProductRating is the aggregate rating for a product.
type ProductRating struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// WishlistItem is a saved product on a user's wishlist.
type WishlistItem struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// WishlistResponse pairs wishlist entries with their product details.
type WishlistResponse struct {
	Items    []WishlistItem `json:"items"`
	Products []Product      `json:"products"`
}

// ContactStatus is the triage state of a contact form message.
const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactFormRequest is the payload for the public contact form.
type ContactFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
