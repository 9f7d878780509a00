package model

import "errors"

var (
	ErrBookNotFound         = errors.New("book not found")
	ErrDuplicateBook        = errors.New("book with this ISBN already exists")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrQuoteNotFound        = errors.New("supply quote not found")
	ErrDuplicateQuote       = errors.New("supply quote for this supplier and book already exists")
	ErrSupplierHasPurchases = errors.New("supplier has purchase history and cannot be deleted")
)
