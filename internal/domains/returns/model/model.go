package model

import "time"

// Return is one write-once refund header referencing the sale it reverses.
// Stock increments happen in the same transaction as the insert.
type Return struct {
	ReturnID   int64     `db:"return_id"`
	OrderID    int64     `db:"order_id"`
	Reason     *string   `db:"reason"`
	ReturnTime time.Time `db:"return_time"`
	UserID     int       `db:"user_id"`
}

type ReturnDetail struct {
	ReturnID  int64  `db:"return_id"`
	ISBN      string `db:"isbn"`
	ReturnQty int    `db:"return_qty"`
}
