package db

import (
	"context"
	"fmt"
)

// RegisterUser inserts a user. A nil first name defaults to the
// capitalized username; a nil last name is stored as NULL.
func (s *Store) RegisterUser(ctx context.Context, u NewUser) error {
	first := u.FirstName
	if first == nil {
		name := DefaultFirstName(u.Username)
		first = &name
	}

	return s.RunWrite(ctx, "save user", func(tx *Tx) error {
		_, err := tx.Exec(s.q.insertUser, u.Username, first, u.LastName)
		return err
	})
}

// ListUsers returns every user ordered by id. Missing names come back empty.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.db.SelectContext(ctx, &users, s.q.listUsers); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
