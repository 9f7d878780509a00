package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type PurchaseInsertRequest struct {
	SupplierID  int    `json:"supplier_id"`
	ISBN        string `json:"isbn"`
	PurchaseQty int    `json:"purchase_qty"`
}

func (req PurchaseInsertRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(1)),
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
		validation.Field(&req.PurchaseQty, validation.Required, validation.Min(1)),
	)
}

// PurchaseInsertResult echoes the resolved price back to the client.
type PurchaseInsertResult struct {
	PurchaseID    int64           `json:"purchase_id"`
	PurchaseQty   int             `json:"purchase_qty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// PurchaseRow is one entry of /purchase/select, joined with supplier, book
// and operator metadata.
type PurchaseRow struct {
	PurchaseID    int64           `json:"purchase_id"`
	SupplierID    int             `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	PurchaseQty   int             `json:"purchase_qty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PurchaseTime  string          `json:"purchase_time"`
	UserID        int             `json:"user_id"`
	Username      string          `json:"username"`
}
