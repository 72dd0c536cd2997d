package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Worker is a person whose attendance and payments are tracked.
// Optional columns are nil when not set.
type Worker struct {
	ID       int64    `db:"WorkerID"`
	Name     string   `db:"Name"`
	Age      *int64   `db:"Age"`
	Contact  *string  `db:"Contact"`
	WageRate *float64 `db:"WageRate"` // hourly rate
}

// Rate returns the hourly wage rate, zero if not set
func (w Worker) Rate() float64 {
	if w.WageRate == nil {
		return 0
	}
	return *w.WageRate
}

// AddWorker inserts a new worker and returns the assigned id
func (c *Conn) AddWorker(ctx context.Context, w Worker) (int64, error) {
	res, err := c.conn.ExecContext(ctx,
		"INSERT INTO Worker (Name, Age, Contact, WageRate) VALUES (?, ?, ?, ?)",
		w.Name, w.Age, w.Contact, w.WageRate)
	if err != nil {
		return 0, fmt.Errorf("failed to add worker %q: %w", w.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get worker id: %w", err)
	}
	return id, nil
}

// ListWorkers returns all workers in insertion order
func (c *Conn) ListWorkers(ctx context.Context) ([]Worker, error) {
	workers := []Worker{}
	err := c.conn.SelectContext(ctx, &workers,
		"SELECT WorkerID, Name, Age, Contact, WageRate FROM Worker ORDER BY WorkerID")
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	return workers, nil
}

// GetWorker returns a single worker, ErrNotFound if there is no such id
func (c *Conn) GetWorker(ctx context.Context, id int64) (Worker, error) {
	var w Worker
	err := c.conn.GetContext(ctx, &w,
		"SELECT WorkerID, Name, Age, Contact, WageRate FROM Worker WHERE WorkerID = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Worker{}, fmt.Errorf("worker %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Worker{}, fmt.Errorf("failed to get worker %d: %w", id, err)
	}
	return w, nil
}
