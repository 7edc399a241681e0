package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased line item. Name and
// price are copied at order time so later product edits do not alter
// historical orders.
type OrderItem struct {
	ProductID   string  `json:"productId" db:"product_id"`
	ProductName string  `json:"productName" db:"product_name"`
	Size        string  `json:"size" db:"size"`
	Quantity    int     `json:"quantity" db:"quantity"`
	Price       float64 `json:"price" db:"price"`
}

// Order is an immutable purchase record. Items and totals never change
// after creation; only status and payment fields transition.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	UserID          string      `json:"userId" db:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount" db:"total_amount"`
	DiscountAmount  float64     `json:"discountAmount" db:"discount_amount"`
	CouponCode      *string     `json:"couponCode,omitempty" db:"coupon_code"`
	ShippingCost    float64     `json:"shippingCost" db:"shipping_cost"`
	ShippingRegion  string      `json:"shippingRegion" db:"shipping_region"`
	CustomerName    string      `json:"customerName" db:"customer_name"`
	CustomerEmail   string      `json:"customerEmail" db:"customer_email"`
	CustomerPhone   string      `json:"customerPhone" db:"customer_phone"`
	ShippingAddress string      `json:"shippingAddress" db:"shipping_address"`
	Status          OrderStatus `json:"status" db:"status"`
	PaymentMethod   string      `json:"paymentMethod" db:"payment_method"`
	PaymentStatus   string      `json:"paymentStatus" db:"payment_status"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// GrandTotal is the amount charged at checkout.
func (o *Order) GrandTotal() float64 {
	return o.TotalAmount + o.ShippingCost
}

// CreateOrderRequest is the payload for running order assembly.
type CreateOrderRequest struct {
	ShippingRegionID string  `json:"shippingRegionId"`
	CustomerName     string  `json:"customerName"`
	CustomerEmail    string  `json:"customerEmail"`
	CustomerPhone    string  `json:"customerPhone"`
	ShippingAddress  string  `json:"shippingAddress"`
	CouponCode       *string `json:"couponCode,omitempty"`
}

// UpdateOrderStatusRequest is the admin payload for a status transition.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// ShippingTracking is carrier tracking info attached to an order.
type ShippingTracking struct {
	ID                string     `json:"id" db:"id"`
	OrderID           string     `json:"orderId" db:"order_id"`
	TrackingNumber    string     `json:"trackingNumber" db:"tracking_number"`
	Carrier           string     `json:"carrier" db:"carrier"`
	Status            string     `json:"status" db:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty" db:"estimated_delivery"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// UpdateTrackingRequest is the admin payload for tracking updates.
type UpdateTrackingRequest struct {
	TrackingNumber    string     `json:"trackingNumber"`
	Carrier           string     `json:"carrier"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// ReturnStatus is the lifecycle of a return request.
type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

// OrderReturn is a customer-initiated return/refund request.
type OrderReturn struct {
	ID           string       `json:"id" db:"id"`
	OrderID      string       `json:"orderId" db:"order_id"`
	UserID       string       `json:"userId" db:"user_id"`
	Reason       string       `json:"reason" db:"reason"`
	Status       ReturnStatus `json:"status" db:"status"`
	RefundAmount float64      `json:"refundAmount" db:"refund_amount"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// RequestReturnRequest is the payload for requesting a return.
type RequestReturnRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}
