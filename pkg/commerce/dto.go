package commerce

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses returns the closed set in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLineItem is one product entry on an order.
type OrderLineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order mirrors the backend's order record. TotalAmount is fixed at checkout;
// only Status changes after creation.
type Order struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	Items       []OrderLineItem `json:"items"`
	TotalAmount float64         `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
}

// RefundOutcome is the backend-reported state of a refund request.
type RefundOutcome string

const (
	RefundOutcomePending  RefundOutcome = "pending"
	RefundOutcomeApplied  RefundOutcome = "applied"
	RefundOutcomeRejected RefundOutcome = "rejected"
)

// RefundRequest is the acknowledgement returned when a refund is submitted.
type RefundRequest struct {
	OrderID string        `json:"order_id"`
	Reason  string        `json:"reason"`
	Outcome RefundOutcome `json:"outcome"`
}

// StatusAck acknowledges an order status update.
type StatusAck struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// VendorSalesSummary aggregates a vendor's sales over the backend's reporting
// period. TotalSales is non-negative by construction upstream.
type VendorSalesSummary struct {
	VendorID    string  `json:"vendor_id"`
	VendorName  string  `json:"vendor_name"`
	VendorEmail string  `json:"vendor_email"`
	TotalSales  float64 `json:"total_sales"`
	IsPaid      bool    `json:"is_paid"`
}

// PayoutAck acknowledges a payout creation.
type PayoutAck struct {
	PayoutID string  `json:"payout_id"`
	VendorID string  `json:"vendor_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

// Brand is a catalog brand record.
type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// Category is a catalog category record.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog product record owned by a vendor.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id"`
	BrandID     string  `json:"brand_id,omitempty"`
	VendorID    string  `json:"vendor_id"`
}

type statusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}

type refundCreateRequest struct {
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type payoutCreateRequest struct {
	VendorID       string  `json:"vendor_id"`
	Amount         float64 `json:"amount"`
	IdempotencyKey string  `json:"idempotency_key,omitempty"`
}

// BrandCreateParams carries the writable brand fields.
type BrandCreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// ProductCreateParams carries the writable product fields.
type ProductCreateParams struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id"`
	BrandID     string  `json:"brand_id,omitempty"`
}

// ProductUpdateParams carries a partial product update; nil fields are left as is.
type ProductUpdateParams struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	BrandID     *string  `json:"brand_id,omitempty"`
}
