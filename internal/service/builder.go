package service

import (
	"context"
	"errors"
	"strings"

	"github.com/comanda-pos/api/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotReady is returned by Commit when the draft is missing items or the
// table/takeaway details.
var ErrNotReady = errors.New("order is not ready to commit")

// OrderCreator commits a finished draft. Satisfied by *OrderService.
type OrderCreator interface {
	Create(ctx context.Context, req CreateOrderRequest) (store.Order, error)
}

// draftLine is one accumulated line of a draft order.
type draftLine struct {
	product  store.Product
	quantity int
	comment  string
}

// Builder accumulates product selections into a draft order for a single
// ordering session. It is owned by that session, holds no store reference,
// and is discarded after Commit or abandonment. Not safe for concurrent
// use.
type Builder struct {
	lines map[uuid.UUID]*draftLine
	seq   []uuid.UUID // insertion order, preserved for display

	tableNumber  *int
	isTakeaway   bool
	customerName string
	customerID   *uuid.UUID
}

// Summary is the derived totals of a draft, recomputed on demand.
type Summary struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// NewBuilder creates an empty draft order.
func NewBuilder() *Builder {
	return &Builder{lines: make(map[uuid.UUID]*draftLine)}
}

// Add puts one unit of the product on the draft: an existing line gains
// quantity 1, otherwise a new line is inserted with quantity 1.
func (b *Builder) Add(p store.Product) {
	if line, ok := b.lines[p.ID]; ok {
		line.quantity++
		return
	}
	b.lines[p.ID] = &draftLine{product: p, quantity: 1}
	b.seq = append(b.seq, p.ID)
}

// SetQuantity adjusts a line's quantity by delta. A line reaching zero or
// below is removed entirely; the draft never holds a non-positive quantity.
// Unknown product ids are ignored.
func (b *Builder) SetQuantity(productID uuid.UUID, delta int) {
	line, ok := b.lines[productID]
	if !ok {
		return
	}
	line.quantity += delta
	if line.quantity <= 0 {
		delete(b.lines, productID)
		for i, id := range b.seq {
			if id == productID {
				b.seq = append(b.seq[:i], b.seq[i+1:]...)
				break
			}
		}
	}
}

// SetComment attaches a trimmed comment to a line. A blank comment clears
// the field: absence, not an empty string.
func (b *Builder) SetComment(productID uuid.UUID, text string) {
	if line, ok := b.lines[productID]; ok {
		line.comment = strings.TrimSpace(text)
	}
}

// SetTable marks the draft as dine-in at the given table, clearing any
// takeaway details.
func (b *Builder) SetTable(n int) {
	b.tableNumber = &n
	b.isTakeaway = false
	b.customerName = ""
}

// SetTakeaway marks the draft as takeaway for the named customer, clearing
// any table number.
func (b *Builder) SetTakeaway(customerName string) {
	b.isTakeaway = true
	b.customerName = customerName
	b.tableNumber = nil
}

// SetCustomerID links the draft to a registered customer.
func (b *Builder) SetCustomerID(id uuid.UUID) {
	b.customerID = &id
}

// Items returns the draft lines in insertion order.
func (b *Builder) Items() []store.OrderLineItem {
	out := make([]store.OrderLineItem, 0, len(b.seq))
	for _, id := range b.seq {
		line := b.lines[id]
		out = append(out, store.OrderLineItem{
			Product:  line.product,
			Quantity: line.quantity,
			Comment:  line.comment,
		})
	}
	return out
}

// Summary recomputes subtotal and total from the current lines. Total
// equals subtotal under the no-tax policy.
func (b *Builder) Summary() Summary {
	subtotal := decimal.Zero
	for _, id := range b.seq {
		line := b.lines[id]
		subtotal = subtotal.Add(line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
	}
	return Summary{Subtotal: subtotal, Total: subtotal}
}

// Ready reports whether the draft can be committed: at least one line, and
// a non-blank customer name for takeaway or a table number for dine-in. It
// fails closed and never panics on missing fields.
func (b *Builder) Ready() bool {
	if len(b.seq) == 0 {
		return false
	}
	if b.isTakeaway {
		return strings.TrimSpace(b.customerName) != ""
	}
	return b.tableNumber != nil && *b.tableNumber > 0
}

// Commit hands the draft to the order service. Callers are expected to
// check Ready first; an unready draft fails with ErrNotReady and commits
// nothing. The builder itself is left untouched - discard it once the
// returned order is accepted.
func (b *Builder) Commit(ctx context.Context, svc OrderCreator) (store.Order, error) {
	if !b.Ready() {
		return store.Order{}, ErrNotReady
	}

	items := make([]CreateOrderItem, 0, len(b.seq))
	for _, id := range b.seq {
		line := b.lines[id]
		items = append(items, CreateOrderItem{
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			Comment:   line.comment,
		})
	}

	return svc.Create(ctx, CreateOrderRequest{
		Items:        items,
		TableNumber:  b.tableNumber,
		IsTakeaway:   b.isTakeaway,
		CustomerName: b.customerName,
		CustomerID:   b.customerID,
	})
}
