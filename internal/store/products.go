package store

import (
	"context"

	"github.com/google/uuid"
)

// ListProducts returns every product, active or not, in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Product, len(s.doc.Products))
	copy(out, s.doc.Products)
	return out, nil
}

// GetProduct returns a product by id.
func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.doc.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// CreateProduct assigns a fresh id and appends the product to the catalog.
func (s *Store) CreateProduct(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New()
	s.doc.Products = append(s.doc.Products, p)
	if err := s.persist(); err != nil {
		s.doc.Products = s.doc.Products[:len(s.doc.Products)-1]
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces the stored product with the same id. Field merging
// against the previous record is the handler's job; the store sees the full
// updated product.
func (s *Store) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.doc.Products {
		if existing.ID == p.ID {
			s.doc.Products[i] = p
			if err := s.persist(); err != nil {
				s.doc.Products[i] = existing
				return Product{}, err
			}
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// DeleteProduct removes a product from the catalog. Historical orders keep
// their snapshots.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.doc.Products {
		if p.ID == id {
			removed := p
			s.doc.Products = append(s.doc.Products[:i], s.doc.Products[i+1:]...)
			if err := s.persist(); err != nil {
				s.doc.Products = append(s.doc.Products[:i], append([]Product{removed}, s.doc.Products[i:]...)...)
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}
