package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses.
const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeExpired           = "EXPIRED"
	ErrCodeUsageLimitReached = "USAGE_LIMIT_REACHED"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeValidation        = "VALIDATION"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a stable reason code for business failures.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for a malformed request.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewInsufficientStockError names the product that could not be fulfilled.
func NewInsufficientStockError(productName string) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock, "Insufficient stock for "+productName)
}

// Common domain errors.
var (
	ErrUnauthorized       = NewDomainError(ErrCodeUnauthorized, "Unauthorized")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorized, "Invalid email or password")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "Admin access required")
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrRegionNotFound     = NewDomainError(ErrCodeNotFound, "Shipping region not found")
	ErrCouponNotFound     = NewDomainError(ErrCodeNotFound, "Invalid coupon code")
	ErrAddressNotFound    = NewDomainError(ErrCodeNotFound, "Address not found")
	ErrPaymentNotFound    = NewDomainError(ErrCodeNotFound, "Payment not found")
	ErrTrackingNotFound   = NewDomainError(ErrCodeNotFound, "No tracking information available")
	ErrReturnNotFound     = NewDomainError(ErrCodeNotFound, "Return request not found")
	ErrMessageNotFound    = NewDomainError(ErrCodeNotFound, "Message not found")
	ErrWishlistNotFound   = NewDomainError(ErrCodeNotFound, "Item not found in wishlist")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrCouponExpired      = NewDomainError(ErrCodeExpired, "Coupon has expired")
	ErrResetTokenExpired  = NewDomainError(ErrCodeExpired, "Reset token is invalid or expired")
	ErrUsageLimitReached  = NewDomainError(ErrCodeUsageLimitReached, "Coupon usage limit reached")
	ErrEmailTaken         = NewDomainError(ErrCodeConflict, "Email already registered")
	ErrDuplicateReview    = NewDomainError(ErrCodeConflict, "You already reviewed this product")
	ErrDuplicateWishlist  = NewDomainError(ErrCodeConflict, "Product already in wishlist")
	ErrDuplicateReturn    = NewDomainError(ErrCodeConflict, "Return already requested for this order")
	ErrCouponCodeTaken    = NewDomainError(ErrCodeConflict, "Coupon code already exists")
	ErrOrderAlreadyPaid   = NewDomainError(ErrCodeConflict, "Order already paid")
)
