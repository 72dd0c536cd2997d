package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Attendance is a single day of work for a worker
type Attendance struct {
	ID          int64   `db:"AttendanceID"`
	WorkerID    int64   `db:"WorkerID"`
	WorkDate    string  `db:"WorkDate"` // ISO 8601 date, stored as given
	HoursWorked float64 `db:"HoursWorked"`
}

// RecordAttendance appends an attendance entry and returns its id.
// Neither the worker id nor the date is checked.
func (c *Conn) RecordAttendance(ctx context.Context, a Attendance) (int64, error) {
	res, err := c.conn.ExecContext(ctx,
		"INSERT INTO Attendance (WorkerID, WorkDate, HoursWorked) VALUES (?, ?, ?)",
		a.WorkerID, a.WorkDate, a.HoursWorked)
	if err != nil {
		return 0, fmt.Errorf("failed to record attendance for worker %d: %w", a.WorkerID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get attendance id: %w", err)
	}
	return id, nil
}

// ListAttendance returns all attendance entries of the worker in insertion order
func (c *Conn) ListAttendance(ctx context.Context, workerID int64) ([]Attendance, error) {
	res := []Attendance{}
	err := c.conn.SelectContext(ctx, &res,
		`SELECT AttendanceID, WorkerID, WorkDate, HoursWorked FROM Attendance
		WHERE WorkerID = ? ORDER BY AttendanceID`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for worker %d: %w", workerID, err)
	}
	return res, nil
}

// TotalHours returns the sum of hours worked, zero if nothing recorded
func (c *Conn) TotalHours(ctx context.Context, workerID int64) (float64, error) {
	var total sql.NullFloat64
	if err := c.conn.GetContext(ctx, &total,
		"SELECT SUM(HoursWorked) FROM Attendance WHERE WorkerID = ?", workerID); err != nil {
		return 0, fmt.Errorf("failed to sum hours for worker %d: %w", workerID, err)
	}
	return total.Float64, nil
}
