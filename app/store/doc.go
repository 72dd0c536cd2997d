// Package store provides SQLite persistence for workers, their attendance and payments.
// Rows are scanned by column name with sqlx, and every request works through its own
// connection taken with SQLiteStore.Acquire and released with Conn.Close.
package store
