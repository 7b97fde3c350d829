package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/service"
	"github.com/comanda-pos/api/internal/store"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	Create(ctx context.Context, req service.CreateOrderRequest) (store.Order, error)
}

// OrderStore defines the store methods needed by order read/update
// handlers. Satisfied by *store.Store; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]store.Order, error)
	GetOrder(ctx context.Context, id int64) (store.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (store.Order, error)
}

// OrderNotifier publishes order events to connected clients.
// Satisfied by *ws.Hub; may be nil when no live feed is wanted.
type OrderNotifier interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc      OrderServicer
	store    OrderStore
	notifier OrderNotifier
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, notifier OrderNotifier) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, notifier: notifier}
}

// --- Request / Response types ---

type createOrderRequest struct {
	Items        []orderItemRequest `json:"items"`
	TableNumber  *int               `json:"tableNumber"`
	IsTakeaway   bool               `json:"isTakeaway"`
	CustomerName string             `json:"customerName"`
	CustomerID   *uuid.UUID         `json:"customerId"`
}

// orderItemRequest accepts the product reference either as a bare
// productId or as an embedded product object; older clients send the full
// snapshot and only the id is trusted.
type orderItemRequest struct {
	ProductID string             `json:"productId"`
	Product   *productRefRequest `json:"product"`
	Quantity  int                `json:"quantity"`
	Comments  string             `json:"comments"`
}

type productRefRequest struct {
	ID string `json:"id"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Comments string          `json:"comments,omitempty"`
}

type orderResponse struct {
	ID           int64               `json:"id"`
	Items        []orderItemResponse `json:"items"`
	Subtotal     string              `json:"subtotal"`
	Total        string              `json:"total"`
	Status       string              `json:"status"`
	NextStatus   *string             `json:"nextStatus"`
	CreatedAt    time.Time           `json:"createdAt"`
	TableNumber  *int                `json:"tableNumber"`
	IsTakeaway   bool                `json:"isTakeaway"`
	CustomerName string              `json:"customerName,omitempty"`
	CustomerID   *uuid.UUID          `json:"customerId,omitempty"`
}

func toOrderResponse(o store.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemResponse{
			Product:  toProductResponse(item.Product),
			Quantity: item.Quantity,
			Comments: item.Comment,
		}
	}

	resp := orderResponse{
		ID:           o.ID,
		Items:        items,
		Subtotal:     o.Subtotal.StringFixed(2),
		Total:        o.Total.StringFixed(2),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		TableNumber:  o.TableNumber,
		IsTakeaway:   o.IsTakeaway,
		CustomerName: o.CustomerName,
		CustomerID:   o.CustomerID,
	}
	if next, ok := enum.NextStatus(o.Status); ok {
		resp.NextStatus = &next
	}
	return resp
}

// --- Handlers ---

// List returns all orders, most recent first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order by id.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Create commits a new order. Totals are recomputed from the catalog;
// amounts in the request body are never trusted.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	svcItems := make([]service.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		idStr := item.ProductID
		if idStr == "" && item.Product != nil {
			idStr = item.Product.ID
		}
		if idStr == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": formatItemError(i, "productId is required")})
			return
		}
		productID, err := uuid.Parse(idStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": formatItemError(i, "invalid productId")})
			return
		}
		if item.Quantity <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": formatItemError(i, "quantity must be > 0")})
			return
		}
		svcItems[i] = service.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Comment:   item.Comments,
		}
	}

	// Registered customers are always linked to their own orders.
	customerID := req.CustomerID
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil && claims.Role == enum.RoleCustomer {
		id := claims.UserID
		customerID = &id
	}

	order, err := h.svc.Create(r.Context(), service.CreateOrderRequest{
		Items:        svcItems,
		TableNumber:  req.TableNumber,
		IsTakeaway:   req.IsTakeaway,
		CustomerName: req.CustomerName,
		CustomerID:   customerID,
	})
	if err != nil {
		if isOrderValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(ws.EventOrderCreated, order)
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// UpdateStatus overwrites an order's status. Any member of the status
// enumeration is accepted from any state; the forward flow is advisory and
// enforced only by the UI.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}
	if !enum.IsValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		if errors.Is(err, store.ErrInvalidStatus) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.notify(ws.EventOrderStatusUpdated, updated)
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

// --- Helpers ---

func (h *OrderHandler) notify(eventType string, order store.Order) {
	if h.notifier == nil {
		return
	}
	payload, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		log.Printf("ERROR: marshal order event: %v", err)
		return
	}
	h.notifier.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

func formatItemError(i int, msg string) string {
	return "item[" + strconv.Itoa(i) + "]: " + msg
}

func isOrderValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrProductNotFound) ||
		errors.Is(err, service.ErrTableRequired) ||
		errors.Is(err, service.ErrInvalidTableNumber) ||
		errors.Is(err, service.ErrCustomerNameRequired)
}
