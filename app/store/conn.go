package store

import (
	"github.com/jmoiron/sqlx"
)

// Conn is a single store connection scoped to one request.
// All registry and recorder operations run through it.
type Conn struct {
	conn *sqlx.Conn
}

// Close returns the connection to the store. Calling it more than once is a no-op.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
