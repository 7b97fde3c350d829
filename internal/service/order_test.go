package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/comanda-pos/api/internal/enum"
	"github.com/comanda-pos/api/internal/service"
	"github.com/comanda-pos/api/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Mock OrderStore ---

type mockOrderStore struct {
	products map[uuid.UUID]store.Product
	created  []store.Order
}

func newMockOrderStore(products ...store.Product) *mockOrderStore {
	m := &mockOrderStore{products: make(map[uuid.UUID]store.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockOrderStore) GetProduct(ctx context.Context, id uuid.UUID) (store.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return store.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, o store.Order) (store.Order, error) {
	o.ID = int64(101 + len(m.created))
	m.created = append(m.created, o)
	return o, nil
}

// --- Helpers ---

func menuProduct(name, price string) store.Product {
	return store.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: "Platos Principales",
		Price:    decimal.RequireFromString(price),
		Active:   true,
	}
}

func intPtr(n int) *int { return &n }

// --- Tests ---

func TestCreateOrderComputesTotals(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	wine := menuProduct("Copa de Vino (Tinto/Blanco)", "9.00")
	st := newMockOrderStore(salmon, wine)
	svc := service.NewOrderService(st)

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items: []service.CreateOrderItem{
			{ProductID: salmon.ID, Quantity: 2},
			{ProductID: wine.ID, Quantity: 1},
		},
		TableNumber: intPtr(3),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	want := decimal.RequireFromString("57.00")
	if !order.Subtotal.Equal(want) {
		t.Errorf("subtotal: got %s, want %s", order.Subtotal, want)
	}
	// No tax: total always equals subtotal.
	if !order.Total.Equal(order.Subtotal) {
		t.Errorf("total %s != subtotal %s", order.Total, order.Subtotal)
	}
	if order.Status != enum.StatusPending {
		t.Errorf("status: got %s, want %s", order.Status, enum.StatusPending)
	}
	if order.ID != 101 {
		t.Errorf("id: got %d, want 101", order.ID)
	}
}

func TestCreateOrderSingleLineTotals(t *testing.T) {
	salmon := menuProduct("Salmón", "320")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:       []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 2}},
		TableNumber: intPtr(1),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	want := decimal.NewFromInt(640)
	if !order.Subtotal.Equal(want) {
		t.Errorf("subtotal: got %s, want 640", order.Subtotal)
	}
	if !order.Total.Equal(want) {
		t.Errorf("total: got %s, want 640", order.Total)
	}
}

func TestCreateOrderSnapshotsProducts(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	st := newMockOrderStore(salmon)
	svc := service.NewOrderService(st)

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:       []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1, Comment: "  sin espárragos  "}},
		TableNumber: intPtr(5),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	item := order.Items[0]
	if item.Product.ID != salmon.ID || item.Product.Name != salmon.Name {
		t.Errorf("product not snapshotted: %+v", item.Product)
	}
	if item.Comment != "sin espárragos" {
		t.Errorf("comment: got %q, want trimmed", item.Comment)
	}
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc := service.NewOrderService(newMockOrderStore())

	_, err := svc.Create(context.Background(), service.CreateOrderRequest{TableNumber: intPtr(1)})
	if !errors.Is(err, service.ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}
}

func TestCreateOrderZeroQuantity(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	_, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:       []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 0}},
		TableNumber: intPtr(1),
	})
	if !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	st := newMockOrderStore()
	svc := service.NewOrderService(st)

	_, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:       []service.CreateOrderItem{{ProductID: uuid.New(), Quantity: 1}},
		TableNumber: intPtr(1),
	})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(st.created) != 0 {
		t.Errorf("order committed despite validation failure")
	}
}

func TestCreateOrderDineInRequiresTable(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	_, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items: []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1}},
	})
	if !errors.Is(err, service.ErrTableRequired) {
		t.Fatalf("expected ErrTableRequired, got %v", err)
	}

	_, err = svc.Create(context.Background(), service.CreateOrderRequest{
		Items:       []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1}},
		TableNumber: intPtr(0),
	})
	if !errors.Is(err, service.ErrInvalidTableNumber) {
		t.Fatalf("expected ErrInvalidTableNumber, got %v", err)
	}
}

func TestCreateOrderTakeawayRequiresCustomerName(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	_, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:        []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1}},
		IsTakeaway:   true,
		CustomerName: "   ",
	})
	if !errors.Is(err, service.ErrCustomerNameRequired) {
		t.Fatalf("expected ErrCustomerNameRequired, got %v", err)
	}
}

func TestCreateOrderTakeawayClearsTableNumber(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:        []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1}},
		IsTakeaway:   true,
		CustomerName: "Ana García",
		TableNumber:  intPtr(4),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TableNumber != nil {
		t.Errorf("takeaway order kept table number %d", *order.TableNumber)
	}
	if order.CustomerName != "Ana García" {
		t.Errorf("customer name: got %q", order.CustomerName)
	}
}

func TestCreateOrderDineInClearsCustomerName(t *testing.T) {
	salmon := menuProduct("Salmón a la Parrilla", "24.00")
	svc := service.NewOrderService(newMockOrderStore(salmon))

	order, err := svc.Create(context.Background(), service.CreateOrderRequest{
		Items:        []service.CreateOrderItem{{ProductID: salmon.ID, Quantity: 1}},
		TableNumber:  intPtr(4),
		CustomerName: "Ana García",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.CustomerName != "" {
		t.Errorf("dine-in order kept customer name %q", order.CustomerName)
	}
	if order.TableNumber == nil || *order.TableNumber != 4 {
		t.Errorf("table number not preserved: %v", order.TableNumber)
	}
}
