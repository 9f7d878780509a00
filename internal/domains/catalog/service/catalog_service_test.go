package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/shared/listing"
)

type fakeCatalogRepo struct {
	books      map[string]*model.Book
	lastParams listing.Params
	calls      int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{books: map[string]*model.Book{}}
}

func (f *fakeCatalogRepo) CreateBook(_ context.Context, book *model.Book) error {
	f.calls++
	if _, ok := f.books[book.ISBN]; ok {
		return model.ErrDuplicateBook
	}
	f.books[book.ISBN] = book
	return nil
}

func (f *fakeCatalogRepo) UpdateBook(_ context.Context, req model.BookUpdateRequest) error {
	f.calls++
	if _, ok := f.books[req.ISBN]; !ok {
		return model.ErrBookNotFound
	}
	return nil
}

func (f *fakeCatalogRepo) DeleteBook(_ context.Context, isbn string) error {
	f.calls++
	if _, ok := f.books[isbn]; !ok {
		return model.ErrBookNotFound
	}
	delete(f.books, isbn)
	return nil
}

func (f *fakeCatalogRepo) GetBook(_ context.Context, isbn string) (*model.Book, error) {
	book, ok := f.books[isbn]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return book, nil
}

func (f *fakeCatalogRepo) ListBooks(_ context.Context, params listing.Params) ([]model.BookRow, int, error) {
	f.calls++
	f.lastParams = params
	return []model.BookRow{}, 0, nil
}

func (f *fakeCatalogRepo) CreateSupplier(_ context.Context, supplier *model.Supplier) error {
	f.calls++
	supplier.SupplierID = 1
	return nil
}

func (f *fakeCatalogRepo) UpdateSupplier(_ context.Context, _ model.SupplierUpdateRequest) error {
	f.calls++
	return nil
}

func (f *fakeCatalogRepo) DeleteSupplier(_ context.Context, _ int) error {
	f.calls++
	return nil
}

func (f *fakeCatalogRepo) ListSuppliers(_ context.Context, params listing.Params) ([]model.SupplierRow, int, error) {
	f.calls++
	f.lastParams = params
	return []model.SupplierRow{}, 0, nil
}

func (f *fakeCatalogRepo) CreateQuote(_ context.Context, _ *model.SupplyQuote) error {
	f.calls++
	return nil
}

func (f *fakeCatalogRepo) UpdateQuote(_ context.Context, _ *model.SupplyQuote) error {
	f.calls++
	return nil
}

func (f *fakeCatalogRepo) DeleteQuote(_ context.Context, _ int, _ string) error {
	f.calls++
	return nil
}

func (f *fakeCatalogRepo) ListQuotes(_ context.Context, params listing.Params) ([]model.QuoteRow, int, error) {
	f.calls++
	f.lastParams = params
	return []model.QuoteRow{}, 0, nil
}

func TestInsertBookValidationShortCircuits(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	err := svc.InsertBook(context.Background(), model.BookInsertRequest{
		ISBN:  "123", // too short
		Title: "Testing",
		Price: decimal.NewFromFloat(10.00),
	})
	assert.Error(t, err)
	assert.Zero(t, repo.calls)
}

func TestInsertBookPassesThrough(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	err := svc.InsertBook(context.Background(), model.BookInsertRequest{
		ISBN:  "9780134190440",
		Title: "The Go Programming Language",
		Price: decimal.NewFromFloat(39.99),
	})
	require.NoError(t, err)
	require.Contains(t, repo.books, "9780134190440")
	assert.True(t, repo.books["9780134190440"].Price.Equal(decimal.NewFromFloat(39.99)))
}

func TestInsertSupplierReturnsAssignedID(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	supplier, err := svc.InsertSupplier(context.Background(), model.SupplierInsertRequest{
		SupplierName: "Acme Books",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, supplier.SupplierID)
}

func TestSelectBooksDefaultsSort(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	_, _, err := svc.SelectBooks(context.Background(), ListQuery{Sort: "1; DROP TABLE t_book"})
	require.NoError(t, err)

	assert.Equal(t, "isbn", repo.lastParams.SortField)
	assert.Equal(t, listing.DirAsc, repo.lastParams.SortDir)
	assert.Equal(t, listing.DefaultLimit, repo.lastParams.Limit)
}

func TestSelectQuotesQualifiesSortColumn(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	_, _, err := svc.SelectQuotes(context.Background(), ListQuery{
		Sort: "supplier_name",
		Dir:  "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, "s.supplier_name", repo.lastParams.SortField)
	assert.Equal(t, listing.DirDesc, repo.lastParams.SortDir)
}
