package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	ISBN string `json:"isbn"`
	Qty  int    `json:"qty"`
}

func (req OrderLineRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
		validation.Field(&req.Qty, validation.Required, validation.Min(1)),
	)
}

type OrderInsertRequest struct {
	Details []OrderLineRequest `json:"details"`
}

func (req OrderInsertRequest) Validate() error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Details, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, line := range req.Details {
		if err := line.Validate(); err != nil {
			return err
		}
		if seen[line.ISBN] {
			return validation.Errors{
				"details": validation.NewError("validation_duplicate", "duplicate isbn in details"),
			}
		}
		seen[line.ISBN] = true
	}
	return nil
}

type OrderInsertResult struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DetailCount int             `json:"detail_count"`
}

// OrderDetailRow is one nested line of /order/select.
type OrderDetailRow struct {
	ISBN       string          `json:"isbn"`
	Title      string          `json:"title"`
	OrderQty   int             `json:"order_qty"`
	OrderPrice decimal.Decimal `json:"order_price"`
	SubTotal   decimal.Decimal `json:"sub_total"`
}

// OrderRow is one entry of /order/select: the header with its lines nested
// under details.
type OrderRow struct {
	OrderID     int64            `json:"order_id"`
	OrderTime   string           `json:"order_time"`
	UserID      int              `json:"user_id"`
	Username    string           `json:"username"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Details     []OrderDetailRow `json:"details"`
}
