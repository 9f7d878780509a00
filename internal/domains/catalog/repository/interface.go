package repository

import (
	"context"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/shared/listing"
)

// CatalogRepository is the data-access contract for the reference data:
// books, suppliers and supply quotes.
type CatalogRepository interface {
	// Books. CreateBook also creates the stock record (quantity 0) in the
	// same transaction; DeleteBook cascades to stock and quotes.
	CreateBook(ctx context.Context, book *model.Book) error
	UpdateBook(ctx context.Context, req model.BookUpdateRequest) error
	DeleteBook(ctx context.Context, isbn string) error
	GetBook(ctx context.Context, isbn string) (*model.Book, error)
	ListBooks(ctx context.Context, params listing.Params) ([]model.BookRow, int, error)

	// Suppliers. DeleteSupplier removes the supplier's quotes but refuses
	// while purchase history references the supplier.
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	UpdateSupplier(ctx context.Context, req model.SupplierUpdateRequest) error
	DeleteSupplier(ctx context.Context, supplierID int) error
	ListSuppliers(ctx context.Context, params listing.Params) ([]model.SupplierRow, int, error)

	// Supply quotes.
	CreateQuote(ctx context.Context, quote *model.SupplyQuote) error
	UpdateQuote(ctx context.Context, quote *model.SupplyQuote) error
	DeleteQuote(ctx context.Context, supplierID int, isbn string) error
	ListQuotes(ctx context.Context, params listing.Params) ([]model.QuoteRow, int, error)
}
