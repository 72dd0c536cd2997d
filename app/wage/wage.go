// Package wage computes wage reports and worker summaries from recorded attendance and payments
package wage

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/wagetrack/app/store"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source

// Source is the read side of the store used by reports. It is satisfied by *store.Conn,
// so a report runs all of its queries on a single acquired connection.
type Source interface {
	GetWorker(ctx context.Context, id int64) (store.Worker, error)
	ListAttendance(ctx context.Context, workerID int64) ([]store.Attendance, error)
	ListPayments(ctx context.Context, workerID int64) ([]store.Payment, error)
	TotalPaid(ctx context.Context, workerID int64) (float64, error)
	TotalHours(ctx context.Context, workerID int64) (float64, error)
}

// Report is the computed wage summary of a single worker
type Report struct {
	Worker      store.Worker
	WageRate    float64
	Attendance  []store.Attendance
	Payments    []store.Payment
	TotalHours  float64
	TotalEarned float64
	TotalPaid   float64
	Pending     float64 // negative on overpayment
}

// WorkerInfo is the short summary returned to programmatic callers
type WorkerInfo struct {
	HourlyWage  float64 `json:"hourly_wage"`
	HoursWorked float64 `json:"hours_worked"`
}

// BuildReport collects the worker attendance and payments and computes earned and pending wages.
// Returns an error wrapping store.ErrNotFound if the worker doesn't exist.
func BuildReport(ctx context.Context, src Source, workerID int64) (Report, error) {
	worker, err := src.GetWorker(ctx, workerID)
	if err != nil {
		return Report{}, fmt.Errorf("can't build report: %w", err)
	}

	attendance, err := src.ListAttendance(ctx, workerID)
	if err != nil {
		return Report{}, fmt.Errorf("can't build report: %w", err)
	}

	payments, err := src.ListPayments(ctx, workerID)
	if err != nil {
		return Report{}, fmt.Errorf("can't build report: %w", err)
	}

	totalPaid, err := src.TotalPaid(ctx, workerID)
	if err != nil {
		return Report{}, fmt.Errorf("can't build report: %w", err)
	}

	rate := worker.Rate()
	earned := TotalEarned(rate, attendance)
	return Report{
		Worker:      worker,
		WageRate:    rate,
		Attendance:  attendance,
		Payments:    payments,
		TotalHours:  totalHours(attendance),
		TotalEarned: earned,
		TotalPaid:   totalPaid,
		Pending:     earned - totalPaid,
	}, nil
}

// TotalEarned multiplies each attendance entry by the rate and accumulates row by row
func TotalEarned(rate float64, attendance []store.Attendance) float64 {
	var total float64
	for _, a := range attendance {
		total += a.HoursWorked * rate
	}
	return total
}

func totalHours(attendance []store.Attendance) float64 {
	var total float64
	for _, a := range attendance {
		total += a.HoursWorked
	}
	return total
}

// GetWorkerInfo returns the hourly wage and total hours of the worker.
// An unknown worker gets zero values, only storage failures are returned as errors.
func GetWorkerInfo(ctx context.Context, src Source, workerID int64) (WorkerInfo, error) {
	var info WorkerInfo

	worker, err := src.GetWorker(ctx, workerID)
	switch {
	case err == nil:
		info.HourlyWage = worker.Rate()
	case errors.Is(err, store.ErrNotFound):
		// unknown worker keeps zero wage
	default:
		return WorkerInfo{}, fmt.Errorf("can't get worker info: %w", err)
	}

	if info.HoursWorked, err = src.TotalHours(ctx, workerID); err != nil {
		return WorkerInfo{}, fmt.Errorf("can't get worker info: %w", err)
	}
	return info, nil
}
