package store

import (
	"context"
	"sort"
	"time"

	"github.com/comanda-pos/api/internal/enum"
)

// Order ids start above this floor, so the first order a fresh store issues
// is 101.
const orderIDFloor = 100

// ListOrders returns all orders, most recent first.
func (s *Store) ListOrders(ctx context.Context) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.doc.Orders))
	for i, o := range s.doc.Orders {
		out[i] = cloneOrder(o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetOrder returns an order by id.
func (s *Store) GetOrder(ctx context.Context, id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.doc.Orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return Order{}, ErrNotFound
}

// CreateOrder commits an order: it assigns an id strictly greater than any
// existing id, stamps CreatedAt (unless the caller pre-set it, which the
// seeder does) and prepends the order so the collection stays most recent
// first. Amount and item validation is the order service's job.
func (s *Store) CreateOrder(ctx context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64 = orderIDFloor
	for _, existing := range s.doc.Orders {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	o.ID = maxID + 1

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	s.doc.Orders = append([]Order{cloneOrder(o)}, s.doc.Orders...)
	if err := s.persist(); err != nil {
		s.doc.Orders = s.doc.Orders[1:]
		return Order{}, err
	}
	return o, nil
}

// UpdateOrderStatus overwrites the status of an order. The only check is
// membership in the status enumeration; the forward flow is a UI concern
// and any enumerated value, including CANCELLED, is accepted from any
// state.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status string) (Order, error) {
	if !enum.IsValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.doc.Orders {
		if o.ID == id {
			previous := o.Status
			s.doc.Orders[i].Status = status
			if err := s.persist(); err != nil {
				s.doc.Orders[i].Status = previous
				return Order{}, err
			}
			return cloneOrder(s.doc.Orders[i]), nil
		}
	}
	return Order{}, ErrNotFound
}
