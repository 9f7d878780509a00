package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type ReturnLineRequest struct {
	ISBN      string `json:"isbn"`
	ReturnQty int    `json:"return_qty"`
}

func (req ReturnLineRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
		validation.Field(&req.ReturnQty, validation.Required, validation.Min(1)),
	)
}

type ReturnInsertRequest struct {
	OrderID int64               `json:"order_id"`
	Reason  *string             `json:"reason,omitempty"`
	Details []ReturnLineRequest `json:"details"`
}

func (req ReturnInsertRequest) Validate() error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.OrderID, validation.Required, validation.Min(1)),
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

type ReturnInsertResult struct {
	ReturnID    int64 `json:"return_id"`
	DetailCount int   `json:"detail_count"`
}

// ReturnDetailRow is one nested line of /return/select. The refund price is
// the price the line was sold at, not the current list price.
type ReturnDetailRow struct {
	ISBN         string          `json:"isbn"`
	Title        string          `json:"title"`
	ReturnQty    int             `json:"return_qty"`
	RefundPrice  decimal.Decimal `json:"refund_price"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

type ReturnRow struct {
	ReturnID   int64             `json:"return_id"`
	OrderID    int64             `json:"order_id"`
	Reason     string            `json:"reason"`
	ReturnTime string            `json:"return_time"`
	UserID     int               `json:"user_id"`
	Username   string            `json:"username"`
	Details    []ReturnDetailRow `json:"details"`
}
