// Package store owns the authoritative application state: a single JSON
// document with users, products and orders collections, persisted to a flat
// file. A mutex serializes every operation, so each request observes the
// previous one fully applied and id allocation can never collide.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by store operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Product is a menu entry. Orders embed full product snapshots, so editing
// or deleting a product never alters what historical orders recorded.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Active      bool            `json:"active"`
}

// OrderLineItem is one line of an order: a product snapshot, a quantity and
// an optional kitchen comment. Quantity is always >= 1; a draft line driven
// to zero is removed before it ever reaches the store.
type OrderLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Comment  string  `json:"comments,omitempty"`
}

// Order is a committed order. Created once, then only its status mutates.
// TableNumber is nil exactly when IsTakeaway is true.
type Order struct {
	ID           int64           `json:"id"`
	Items        []OrderLineItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	TableNumber  *int            `json:"tableNumber"`
	IsTakeaway   bool            `json:"isTakeaway"`
	CustomerName string          `json:"customerName,omitempty"`
	CustomerID   *uuid.UUID      `json:"customerId,omitempty"`
}

// User is a staff member or registered customer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
}

// document is the persisted file layout.
type document struct {
	Users    []User    `json:"users"`
	Products []Product `json:"products"`
	Orders   []Order   `json:"orders"`
}

// Store is the single writer for all persistent state. Obtain one with Open
// and pass the handle to whoever needs it; there is no package-level state.
type Store struct {
	path string

	mu  sync.Mutex
	doc document
}

// Open loads the document at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// persist writes the document atomically: marshal to a temp file in the
// same directory, then rename over the target. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// cloneOrder copies an order deeply enough that callers cannot reach the
// stored line items.
func cloneOrder(o Order) Order {
	items := make([]OrderLineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
