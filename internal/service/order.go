package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrEmptyItems           = errors.New("items are required")
	ErrInvalidQuantity      = errors.New("quantity must be > 0")
	ErrProductNotFound      = errors.New("product not found")
	ErrTableRequired        = errors.New("table number is required for dine-in orders")
	ErrInvalidTableNumber   = errors.New("table number must be > 0")
	ErrCustomerNameRequired = errors.New("customer name is required for takeaway orders")
)

// OrderStore defines the store methods needed to create orders.
// Satisfied by *store.Store; narrow interface for testability.
type OrderStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (store.Product, error)
	CreateOrder(ctx context.Context, o store.Order) (store.Order, error)
}

// CreateOrderRequest is the validated input for committing an order.
type CreateOrderRequest struct {
	Items        []CreateOrderItem
	TableNumber  *int
	IsTakeaway   bool
	CustomerName string
	CustomerID   *uuid.UUID
}

// CreateOrderItem is a single line of the request. The caller sends only
// the product id; the service snapshots the product and prices the line
// itself, so client-supplied amounts can never reach an order.
type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	Comment   string
}

// OrderService turns validated requests into committed orders.
type OrderService struct {
	store OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(st OrderStore) *OrderService {
	return &OrderService{store: st}
}

// Create validates the request, snapshots each product from the catalog,
// recomputes subtotal and total server-side, and commits the order with
// status PENDING. All validation happens before the store is touched, so a
// failed request never partially commits.
//
// Totals carry no tax: total equals subtotal. The rate lives nowhere else,
// so the policy is uniform across creation and the dashboards.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (store.Order, error) {
	if len(req.Items) == 0 {
		return store.Order{}, ErrEmptyItems
	}

	var tableNumber *int
	customerName := strings.TrimSpace(req.CustomerName)
	if req.IsTakeaway {
		// Table number is nil exactly when the order is takeaway.
		if customerName == "" {
			return store.Order{}, ErrCustomerNameRequired
		}
	} else {
		customerName = ""
		if req.TableNumber == nil {
			return store.Order{}, ErrTableRequired
		}
		if *req.TableNumber <= 0 {
			return store.Order{}, ErrInvalidTableNumber
		}
		n := *req.TableNumber
		tableNumber = &n
	}

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return store.Order{}, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
	}

	subtotal := decimal.Zero
	items := make([]store.OrderLineItem, len(req.Items))
	for i, item := range req.Items {
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Order{}, fmt.Errorf("item[%d]: %w", i, ErrProductNotFound)
			}
			return store.Order{}, fmt.Errorf("item[%d]: get product: %w", i, err)
		}

		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items[i] = store.OrderLineItem{
			Product:  product,
			Quantity: item.Quantity,
			Comment:  strings.TrimSpace(item.Comment),
		}
	}

	order := store.Order{
		Items:        items,
		Subtotal:     subtotal,
		Total:        subtotal,
		Status:       enum.StatusPending,
		TableNumber:  tableNumber,
		IsTakeaway:   req.IsTakeaway,
		CustomerName: customerName,
		CustomerID:   req.CustomerID,
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return store.Order{}, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}
