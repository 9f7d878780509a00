package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one write-once sale header; its lines live in OrderDetail. Stock
// decrements happen in the same transaction as the insert.
type Order struct {
	OrderID   int64     `db:"order_id"`
	OrderTime time.Time `db:"order_time"`
	UserID    int       `db:"user_id"`
}

type OrderDetail struct {
	OrderID    int64           `db:"order_id"`
	ISBN       string          `db:"isbn"`
	OrderQty   int             `db:"order_qty"`
	OrderPrice decimal.Decimal `db:"order_price"`
}

// SubTotal is order_qty * order_price.
func (d *OrderDetail) SubTotal() decimal.Decimal {
	return d.OrderPrice.Mul(decimal.NewFromInt(int64(d.OrderQty)))
}
