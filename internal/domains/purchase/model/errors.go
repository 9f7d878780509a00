package model

import "errors"

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrBookNotFound     = errors.New("book not found")

	// ErrPriceUndeterminable means neither a supply quote for the
	// (supplier, isbn) pair nor a list price on the book exists.
	ErrPriceUndeterminable = errors.New("purchase price cannot be determined")
)
