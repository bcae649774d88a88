package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Binding maps a gesture to an external command.
type Binding struct {
	ID        string
	Gesture   string
	Command   string
	Args      []string
	Enabled   bool
	CreatedAt time.Time
}

// BindingRepository provides CRUD operations for action bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding. Each gesture can have at most one binding.
func (r *BindingRepository) Create(b *Binding) error {
	args, err := json.Marshal(b.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}

	b.CreatedAt = time.Now()
	_, err = r.db.Exec(
		`INSERT INTO bindings (id, gesture, command, args, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Gesture, b.Command, string(args), boolToInt(b.Enabled), b.CreatedAt,
	)
	return err
}

// Get returns the binding for a gesture, or ErrNotFound.
func (r *BindingRepository) Get(gesture string) (*Binding, error) {
	row := r.db.QueryRow(
		`SELECT id, gesture, command, args, enabled, created_at
		 FROM bindings WHERE gesture = ?`, gesture,
	)
	return scanBinding(row)
}

// GetByID returns the binding with the given ID, or ErrNotFound.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	row := r.db.QueryRow(
		`SELECT id, gesture, command, args, enabled, created_at
		 FROM bindings WHERE id = ?`, id,
	)
	return scanBinding(row)
}

// List returns all bindings.
func (r *BindingRepository) List() ([]Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, command, args, enabled, created_at
		 FROM bindings ORDER BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, *b)
	}

	return bindings, rows.Err()
}

// Update replaces the command, args, and enabled flag of a binding.
func (r *BindingRepository) Update(b *Binding) error {
	args, err := json.Marshal(b.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}

	res, err := r.db.Exec(
		`UPDATE bindings SET command = ?, args = ?, enabled = ? WHERE id = ?`,
		b.Command, string(args), boolToInt(b.Enabled), b.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a binding by ID.
func (r *BindingRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*Binding, error) {
	var b Binding
	var args string
	var enabled int

	err := row.Scan(&b.ID, &b.Gesture, &b.Command, &args, &enabled, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(args), &b.Args); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	b.Enabled = enabled != 0

	return &b, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
