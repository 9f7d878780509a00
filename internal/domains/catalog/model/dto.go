package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// BOOK REQUESTS
// =====================================================

type BookInsertRequest struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    *string         `json:"author,omitempty"`
	Publisher *string         `json:"publisher,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

func (req BookInsertRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Required, validation.By(nonNegativeDecimal)),
	)
}

// BookUpdateRequest updates only the fields present in the payload.
type BookUpdateRequest struct {
	ISBN      string           `json:"isbn"`
	Title     *string          `json:"title,omitempty"`
	Author    *string          `json:"author,omitempty"`
	Publisher *string          `json:"publisher,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

func (req BookUpdateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
	)
}

type BookDeleteRequest struct {
	ISBN string `json:"isbn"`
}

func (req BookDeleteRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required),
	)
}

// BookRow is one entry of /book/select.
type BookRow struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	Price     decimal.Decimal `json:"price"`
}

// =====================================================
// SUPPLIER REQUESTS
// =====================================================

type SupplierInsertRequest struct {
	SupplierName string `json:"supplier_name"`
}

func (req SupplierInsertRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierName, validation.Required, validation.Length(1, 100)),
	)
}

type SupplierUpdateRequest struct {
	SupplierID   int    `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
}

func (req SupplierUpdateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(1)),
		validation.Field(&req.SupplierName, validation.Required, validation.Length(1, 100)),
	)
}

type SupplierDeleteRequest struct {
	SupplierID int `json:"supplier_id"`
}

func (req SupplierDeleteRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(1)),
	)
}

type SupplierRow struct {
	SupplierID   int    `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
}

// =====================================================
// SUPPLY QUOTE REQUESTS
// =====================================================

type QuoteInsertRequest struct {
	SupplierID  int             `json:"supplier_id"`
	ISBN        string          `json:"isbn"`
	SupplyPrice decimal.Decimal `json:"supply_price"`
}

func (req QuoteInsertRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(1)),
		validation.Field(&req.ISBN, validation.Required, validation.Length(10, 13)),
		validation.Field(&req.SupplyPrice, validation.Required, validation.By(nonNegativeDecimal)),
	)
}

type QuoteUpdateRequest struct {
	SupplierID  int             `json:"supplier_id"`
	ISBN        string          `json:"isbn"`
	SupplyPrice decimal.Decimal `json:"supply_price"`
}

func (req QuoteUpdateRequest) Validate() error {
	return QuoteInsertRequest(req).Validate()
}

type QuoteDeleteRequest struct {
	SupplierID int    `json:"supplier_id"`
	ISBN       string `json:"isbn"`
}

func (req QuoteDeleteRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SupplierID, validation.Required, validation.Min(1)),
		validation.Field(&req.ISBN, validation.Required),
	)
}

// QuoteRow is one entry of /supply-info/select, joined with supplier and
// book metadata.
type QuoteRow struct {
	SupplierID   int             `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	ISBN         string          `json:"isbn"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Publisher    string          `json:"publisher"`
	SupplyPrice  decimal.Decimal `json:"supply_price"`
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_decimal", "must be a decimal value")
	}
	if d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}
