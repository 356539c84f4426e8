// Package contract is the published language shared by the Orders and
// Payments contexts: topic names and wire-level payload schemas. These shapes
// must stay stable across the context boundary; they are deliberately plain
// structs decoupled from the domain types.
package contract

const (
	TopicOrderPlaced     = "order.placed"
	TopicPaymentApproved = "payment.approved"
	TopicPaymentDenied   = "payment.denied"
)

type OrderPlacedPayload struct {
	OrderID         string                 `json:"orderId"`
	CustomerID      string                 `json:"customerId"`
	CartID          string                 `json:"cartId"`
	Items           []OrderPlacedItem      `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	Currency        string                 `json:"currency"`
	ShippingAddress ShippingAddressPayload `json:"shippingAddress"`
	Timestamp       string                 `json:"timestamp"`
}

type OrderPlacedItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type ShippingAddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type PaymentApprovedPayload struct {
	OrderID        string  `json:"orderId"`
	PaymentID      string  `json:"paymentId"`
	ApprovedAmount float64 `json:"approvedAmount"`
	Currency       string  `json:"currency"`
	Timestamp      string  `json:"timestamp"`
}

type PaymentDeniedPayload struct {
	OrderID   string `json:"orderId"`
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}
