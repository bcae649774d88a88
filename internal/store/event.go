package store

import (
	"database/sql"
	"time"
)

// Event represents one logged gesture emission.
type Event struct {
	ID        string
	Gesture   string
	Hand      string
	X         int
	Y         int
	EmittedAt time.Time
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends an event to the log.
func (r *EventRepository) Insert(e *Event) error {
	_, err := r.db.Exec(
		`INSERT INTO events (id, gesture, hand, x, y, emitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Gesture, e.Hand, e.X, e.Y, e.EmittedAt,
	)
	return err
}

// Recent returns the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, gesture, hand, x, y, emitted_at
		 FROM events ORDER BY emitted_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Gesture, &e.Hand, &e.X, &e.Y, &e.EmittedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Prune deletes events older than the cutoff and returns the number removed.
func (r *EventRepository) Prune(olderThan time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM events WHERE emitted_at < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
