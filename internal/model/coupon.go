package model

import "time"

// CouponType selects the discount arithmetic.
type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

// Coupon is a discount code. Codes are stored uppercase and matched
// case-insensitively.
type Coupon struct {
	ID          string     `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	Type        CouponType `json:"type" db:"type"`
	Value       float64    `json:"value" db:"value"`
	MinPurchase *float64   `json:"minPurchase,omitempty" db:"min_purchase"`
	MaxDiscount *float64   `json:"maxDiscount,omitempty" db:"max_discount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	UsageLimit  *int       `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount   int        `json:"usedCount" db:"used_count"`
	Active      bool       `json:"active" db:"active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Discount computes the amount deducted from subtotal by this coupon.
// Returns 0 when subtotal is below MinPurchase.
func (c *Coupon) Discount(subtotal float64) float64 {
	if c.MinPurchase != nil && subtotal < *c.MinPurchase {
		return 0
	}
	var d float64
	switch c.Type {
	case CouponPercentage:
		d = subtotal * c.Value / 100
	case CouponFixed:
		d = c.Value
	}
	if c.MaxDiscount != nil && d > *c.MaxDiscount {
		d = *c.MaxDiscount
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}

// ApplyCouponRequest is the payload for coupon validation.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// CreateCouponRequest is the admin payload for creating a coupon.
type CreateCouponRequest struct {
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       float64    `json:"value"`
	MinPurchase *float64   `json:"minPurchase,omitempty"`
	MaxDiscount *float64   `json:"maxDiscount,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UsageLimit  *int       `json:"usageLimit,omitempty"`
}
