package model

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderLineNotFound = errors.New("order line not found")
)

// ReturnExceedsSoldError rejects a return whose quantity, together with all
// prior returns against the same order line, exceeds the quantity sold.
type ReturnExceedsSoldError struct {
	OrderID   int64
	ISBN      string
	Requested int
	Remaining int
}

func (e *ReturnExceedsSoldError) Error() string {
	return fmt.Sprintf("return exceeds sold quantity for order %d, isbn %s: requested %d, remaining %d",
		e.OrderID, e.ISBN, e.Requested, e.Remaining)
}
