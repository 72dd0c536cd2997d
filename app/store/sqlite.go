package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// SQLiteStore implements persistence using SQLite
type SQLiteStore struct {
	db *sqlx.DB
}

// pragmas applied by the driver to every pooled connection. Requests hold their own
// connections, so each of them needs the busy timeout to wait for the writer lock.
var pragmas = []string{"busy_timeout(5000)", "journal_mode(WAL)"}

// NewSQLiteStore opens the database at dbPath in WAL mode and makes sure the schema exists
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.Initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Printf("[DEBUG] sqlite store ready at %s", dbPath)
	return s, nil
}

// Initialize creates the database schema, safe to call repeatedly
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS Worker (
			WorkerID INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT NOT NULL,
			Age INTEGER,
			Contact TEXT,
			WageRate REAL
		)`,
		`CREATE TABLE IF NOT EXISTS Attendance (
			AttendanceID INTEGER PRIMARY KEY AUTOINCREMENT,
			WorkerID INTEGER,
			WorkDate TEXT,
			HoursWorked REAL,
			FOREIGN KEY (WorkerID) REFERENCES Worker(WorkerID)
		)`,
		`CREATE TABLE IF NOT EXISTS Payment (
			PaymentID INTEGER PRIMARY KEY AUTOINCREMENT,
			WorkerID INTEGER,
			PaymentDate TEXT,
			AmountPaid REAL,
			ModeOfPayment TEXT,
			FOREIGN KEY (WorkerID) REFERENCES Worker(WorkerID)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_worker_id ON Attendance(WorkerID)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_worker_id ON Payment(WorkerID)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Acquire takes a dedicated connection for the duration of a single request.
// The caller must release it with Conn.Close.
func (s *SQLiteStore) Acquire(ctx context.Context) (*Conn, error) {
	c, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Conn{conn: c}, nil
}

// dsn appends connection pragmas to the database path
func dsn(dbPath string) string {
	params := url.Values{}
	for _, p := range pragmas {
		params.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + params.Encode()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
