package service

import (
	"context"

	"bookstore-backoffice/internal/domains/catalog/model"
)

// ListQuery carries the raw list parameters from the HTTP layer; the
// service normalizes them against each view's whitelist.
type ListQuery struct {
	Keyword string
	Limit   int
	Sort    string
	Dir     string
}

type CatalogService interface {
	InsertBook(ctx context.Context, req model.BookInsertRequest) error
	UpdateBook(ctx context.Context, req model.BookUpdateRequest) error
	DeleteBook(ctx context.Context, req model.BookDeleteRequest) error
	SelectBooks(ctx context.Context, q ListQuery) ([]model.BookRow, int, error)

	InsertSupplier(ctx context.Context, req model.SupplierInsertRequest) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, req model.SupplierUpdateRequest) error
	DeleteSupplier(ctx context.Context, req model.SupplierDeleteRequest) error
	SelectSuppliers(ctx context.Context, q ListQuery) ([]model.SupplierRow, int, error)

	InsertQuote(ctx context.Context, req model.QuoteInsertRequest) error
	UpdateQuote(ctx context.Context, req model.QuoteUpdateRequest) error
	DeleteQuote(ctx context.Context, req model.QuoteDeleteRequest) error
	SelectQuotes(ctx context.Context, q ListQuery) ([]model.QuoteRow, int, error)
}
