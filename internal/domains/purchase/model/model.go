package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one write-once procurement record. The stock increment happens
// in the same transaction as the insert.
type Purchase struct {
	PurchaseID    int64           `db:"purchase_id"`
	SupplierID    int             `db:"supplier_id"`
	ISBN          string          `db:"isbn"`
	PurchaseQty   int             `db:"purchase_qty"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	PurchaseTime  time.Time       `db:"purchase_time"`
	UserID        int             `db:"user_id"`
}

// TotalAmount is purchase_qty * purchase_price.
func (p *Purchase) TotalAmount() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.PurchaseQty)))
}
