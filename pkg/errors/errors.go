package errors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStatusConflict a conditional status update matched no row:
// the record left the expected state before the write landed.
var ErrStatusConflict = errors.New("record status changed concurrently")

// IsUnavailable reports whether err means the store could not be reached,
// as opposed to a query that reached the store and failed.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
