package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/order-fulfillment/internal/api/middleware"
	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
	"github.com/example/order-fulfillment/internal/orders"
	"github.com/example/order-fulfillment/internal/payments"
)

type Handlers struct {
	carts       *orders.CartService
	orderSvc    *orders.OrderService
	paymentSvc  *payments.Service
	paymentsOut *payments.OrderConsumer
}

func NewHandlers(carts *orders.CartService, orderSvc *orders.OrderService, paymentSvc *payments.Service, paymentsOut *payments.OrderConsumer) *Handlers {
	return &Handlers{
		carts:       carts,
		orderSvc:    orderSvc,
		paymentSvc:  paymentSvc,
		paymentsOut: paymentsOut,
	}
}

// Response shapes

type CartItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customerId"`
	Status     string             `json:"status"`
	Items      []CartItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID    string  `json:"productId"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	ItemDiscount float64 `json:"itemDiscount"`
	LineTotal    float64 `json:"lineTotal"`
}

type OrderResponse struct {
	ID              string                `json:"id"`
	CartID          string                `json:"cartId"`
	CustomerID      string                `json:"customerId"`
	Status          string                `json:"status"`
	Items           []OrderItemResponse   `json:"items"`
	GlobalDiscount  float64               `json:"globalDiscount"`
	TotalAmount     float64               `json:"totalAmount"`
	Currency        string                `json:"currency"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	PaymentID       string                `json:"paymentId,omitempty"`
}

func toCartResponse(c *cart.ShoppingCart) CartResponse {
	resp := CartResponse{
		ID:         c.ID().String(),
		CustomerID: c.CustomerID().String(),
		Status:     string(c.Status()),
		Items:      []CartItemResponse{},
	}
	for _, item := range c.Items() {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity().Value(),
		})
	}
	return resp
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID().String(),
		CartID:          o.CartID().String(),
		CustomerID:      o.CustomerID().String(),
		Status:          string(o.Status()),
		Items:           []OrderItemResponse{},
		GlobalDiscount:  o.GlobalDiscount().Float64(),
		TotalAmount:     o.TotalAmount().Float64(),
		Currency:        o.TotalAmount().Currency(),
		ShippingAddress: o.ShippingAddress(),
		PaymentID:       o.PaymentID(),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:    item.ProductID().String(),
			Quantity:     item.Quantity().Value(),
			UnitPrice:    item.UnitPrice().Float64(),
			ItemDiscount: item.ItemDiscount().Float64(),
			LineTotal:    item.LineTotal().Float64(),
		})
	}
	return resp
}

// Cart Handlers

func (h *Handlers) CreateCart(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.GetCustomerID(r.Context())

	c, err := h.carts.CreateCart(r.Context(), customerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCartResponse(c))
}

func (h *Handlers) ListCarts(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.GetCustomerID(r.Context())

	carts, err := h.carts.ListCustomerCarts(r.Context(), customerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	resp := []CartResponse{}
	for _, c := range carts {
		resp = append(resp, toCartResponse(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := extractPathParam(r.URL.Path, "/carts/")

	c, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !h.ownsCart(r, c) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *Handlers) DeleteCart(w http.ResponseWriter, r *http.Request) {
	cartID := extractPathParam(r.URL.Path, "/carts/")

	c, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !h.ownsCart(r, c) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.carts.DeleteCart(r.Context(), cartID); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	cartID := strings.TrimSuffix(extractPathParam(r.URL.Path, "/carts/"), "/items")

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !h.ownsCart(r, c) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	c, err = h.carts.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

// Checkout and Order Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := strings.TrimSuffix(extractPathParam(r.URL.Path, "/carts/"), "/checkout")

	var req struct {
		ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	address, err := order.NewShippingAddress(req.ShippingAddress)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	c, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !h.ownsCart(r, c) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	o, err := h.orderSvc.Checkout(r.Context(), cartID, address)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := extractPathParam(r.URL.Path, "/orders/")

	o, err := h.orderSvc.GetOrder(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if o.CustomerID().String() != middleware.GetCustomerID(r.Context()) {
		respondJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

// Payment Handlers

// ProcessPayment is the manual entry point into the Payments context. It runs
// the same decision logic as the order.placed consumer and publishes the same
// outcome message, so the Orders side cannot tell the two paths apart.
func (h *Handlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID  string  `json:"orderId"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.paymentSvc.ProcessPayment(r.Context(), payments.Request{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.paymentsOut.PublishResult(r.Context(), req.OrderID, req.Amount, req.Currency, result); err != nil {
		respondJSONError(w, "Failed to publish payment result", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"approved":  result.Approved,
		"paymentId": result.PaymentID,
		"reason":    result.Reason,
	})
}

// Helper functions

func (h *Handlers) ownsCart(r *http.Request, c *cart.ShoppingCart) bool {
	return c.CustomerID().String() == middleware.GetCustomerID(r.Context())
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, shared.ErrValidation):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, shared.ErrStateTransition):
		respondJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, shared.ErrGateway):
		respondJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
