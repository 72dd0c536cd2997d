package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Payment is money paid out to a worker
type Payment struct {
	ID            int64   `db:"PaymentID"`
	WorkerID      int64   `db:"WorkerID"`
	PaymentDate   string  `db:"PaymentDate"`
	AmountPaid    float64 `db:"AmountPaid"`
	ModeOfPayment string  `db:"ModeOfPayment"` // free-form, e.g. "cash"
}

// RecordPayment appends a payment entry and returns its id
func (c *Conn) RecordPayment(ctx context.Context, p Payment) (int64, error) {
	res, err := c.conn.ExecContext(ctx,
		"INSERT INTO Payment (WorkerID, PaymentDate, AmountPaid, ModeOfPayment) VALUES (?, ?, ?, ?)",
		p.WorkerID, p.PaymentDate, p.AmountPaid, p.ModeOfPayment)
	if err != nil {
		return 0, fmt.Errorf("failed to record payment for worker %d: %w", p.WorkerID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get payment id: %w", err)
	}
	return id, nil
}

// ListPayments returns all payments of the worker in insertion order
func (c *Conn) ListPayments(ctx context.Context, workerID int64) ([]Payment, error) {
	res := []Payment{}
	err := c.conn.SelectContext(ctx, &res,
		`SELECT PaymentID, WorkerID, PaymentDate, AmountPaid, ModeOfPayment FROM Payment
		WHERE WorkerID = ? ORDER BY PaymentID`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for worker %d: %w", workerID, err)
	}
	return res, nil
}

// TotalPaid returns the sum of all payments, zero if there are none
func (c *Conn) TotalPaid(ctx context.Context, workerID int64) (float64, error) {
	var total sql.NullFloat64
	if err := c.conn.GetContext(ctx, &total,
		"SELECT SUM(AmountPaid) FROM Payment WHERE WorkerID = ?", workerID); err != nil {
		return 0, fmt.Errorf("failed to sum payments for worker %d: %w", workerID, err)
	}
	return total.Float64, nil
}
