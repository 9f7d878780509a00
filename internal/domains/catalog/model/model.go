package model

import "github.com/shopspring/decimal"

// Book is the reference record for one title, keyed by ISBN.
type Book struct {
	ISBN      string          `db:"isbn"`
	Title     string          `db:"title"`
	Author    *string         `db:"author"`
	Publisher *string         `db:"publisher"`
	Price     decimal.Decimal `db:"price"`
}

// Stock is the on-hand quantity for a book. Created alongside the book with
// quantity 0 and mutated only by the purchase/sale/return workflows.
type Stock struct {
	ISBN     string `db:"isbn"`
	Quantity int    `db:"quantity"`
}

type Supplier struct {
	SupplierID   int    `db:"supplier_id"`
	SupplierName string `db:"supplier_name"`
}

// SupplyQuote is a supplier's offered price for one book, unique per
// (supplier, book).
type SupplyQuote struct {
	SupplierID  int             `db:"supplier_id"`
	ISBN        string          `db:"isbn"`
	SupplyPrice decimal.Decimal `db:"supply_price"`
}
