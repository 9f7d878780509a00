// Package inventory owns the stock ledger. Stock rows change only through
// Adjust, called inside a workflow transaction; the row lock makes the
// check-and-apply atomic per ISBN.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrStockNotFound signals a ledger row missing for the requested ISBN.
// Every book gets its stock row at insert time, so this indicates the book
// itself does not exist.
var ErrStockNotFound = errors.New("stock record not found")

// InsufficientStockError rejects a decrement that would drive the ledger
// negative.
type InsufficientStockError struct {
	ISBN      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ISBN, e.Requested, e.Available)
}

// Adjust locks the stock row for isbn, applies delta and returns the new
// quantity. The quantity never goes negative; a decrement past zero returns
// InsufficientStockError and leaves the row untouched.
func Adjust(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error) {
	const lockQuery = `SELECT quantity FROM t_stock WHERE isbn = $1 FOR UPDATE`

	var current int
	if err := tx.QueryRow(ctx, lockQuery, isbn).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrStockNotFound
		}
		return 0, fmt.Errorf("failed to lock stock row: %w", err)
	}

	next := current + delta
	if next < 0 {
		return 0, &InsufficientStockError{
			ISBN:      isbn,
			Requested: -delta,
			Available: current,
		}
	}

	const updateQuery = `UPDATE t_stock SET quantity = $1 WHERE isbn = $2`
	if _, err := tx.Exec(ctx, updateQuery, next, isbn); err != nil {
		return 0, fmt.Errorf("failed to update stock: %w", err)
	}
	return next, nil
}
