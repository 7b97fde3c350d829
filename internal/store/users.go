package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ListUsers returns every user in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, len(s.doc.Users))
	copy(out, s.doc.Users)
	return out, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// GetUserByUsername looks a user up by username, case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// CreateUser assigns a fresh id and appends the user. Fails with
// ErrUsernameTaken when another user already holds the username under
// case-insensitive comparison.
func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Users {
		if strings.EqualFold(existing.Username, u.Username) {
			return User{}, ErrUsernameTaken
		}
	}

	u.ID = uuid.New()
	s.doc.Users = append(s.doc.Users, u)
	if err := s.persist(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return User{}, err
	}
	return u, nil
}

// UpdateUser replaces the stored user with the same id. Renaming onto a
// username held by a different user fails with ErrUsernameTaken.
func (s *Store) UpdateUser(ctx context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.doc.Users {
		if other.ID != u.ID && strings.EqualFold(other.Username, u.Username) {
			return User{}, ErrUsernameTaken
		}
	}

	for i, existing := range s.doc.Users {
		if existing.ID == u.ID {
			s.doc.Users[i] = u
			if err := s.persist(); err != nil {
				s.doc.Users[i] = existing
				return User{}, err
			}
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.doc.Users {
		if u.ID == id {
			removed := u
			s.doc.Users = append(s.doc.Users[:i], s.doc.Users[i+1:]...)
			if err := s.persist(); err != nil {
				s.doc.Users = append(s.doc.Users[:i], append([]User{removed}, s.doc.Users[i:]...)...)
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}
