package service

import (
	"context"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/domains/catalog/repository"
	"bookstore-backoffice/internal/shared/listing"
)

// Sort whitelists per view: wire-level field name -> column reference.
var (
	bookSortColumns = map[string]string{
		"isbn":      "isbn",
		"title":     "title",
		"author":    "author",
		"publisher": "publisher",
		"price":     "price",
	}
	supplierSortColumns = map[string]string{
		"supplier_id":   "supplier_id",
		"supplier_name": "supplier_name",
	}
	quoteSortColumns = map[string]string{
		"supplier_id":   "si.supplier_id",
		"supplier_name": "s.supplier_name",
		"isbn":          "b.isbn",
		"title":         "b.title",
		"author":        "b.author",
		"publisher":     "b.publisher",
		"supply_price":  "si.supply_price",
	}
)

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

// normalize resolves q against a whitelist map and rewrites the sort field
// to its column reference.
func normalize(q ListQuery, columns map[string]string, defaultSort, defaultDir string) listing.Params {
	fields := make([]string, 0, len(columns))
	for f := range columns {
		fields = append(fields, f)
	}

	params := listing.Normalize(q.Keyword, q.Limit, q.Sort, q.Dir, defaultSort, defaultDir, fields)
	params.SortField = columns[params.SortField]
	return params
}

// =====================================================
// BOOKS
// =====================================================

func (s *catalogService) InsertBook(ctx context.Context, req model.BookInsertRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	book := &model.Book{
		ISBN:      req.ISBN,
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Price:     req.Price,
	}
	return s.repo.CreateBook(ctx, book)
}

func (s *catalogService) UpdateBook(ctx context.Context, req model.BookUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateBook(ctx, req)
}

func (s *catalogService) DeleteBook(ctx context.Context, req model.BookDeleteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.DeleteBook(ctx, req.ISBN)
}

func (s *catalogService) SelectBooks(ctx context.Context, q ListQuery) ([]model.BookRow, int, error) {
	params := normalize(q, bookSortColumns, "isbn", listing.DirAsc)
	return s.repo.ListBooks(ctx, params)
}

// =====================================================
// SUPPLIERS
// =====================================================

func (s *catalogService) InsertSupplier(ctx context.Context, req model.SupplierInsertRequest) (*model.Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{SupplierName: req.SupplierName}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *catalogService) UpdateSupplier(ctx context.Context, req model.SupplierUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateSupplier(ctx, req)
}

func (s *catalogService) DeleteSupplier(ctx context.Context, req model.SupplierDeleteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.DeleteSupplier(ctx, req.SupplierID)
}

func (s *catalogService) SelectSuppliers(ctx context.Context, q ListQuery) ([]model.SupplierRow, int, error) {
	params := normalize(q, supplierSortColumns, "supplier_id", listing.DirAsc)
	return s.repo.ListSuppliers(ctx, params)
}

// =====================================================
// SUPPLY QUOTES
// =====================================================

func (s *catalogService) InsertQuote(ctx context.Context, req model.QuoteInsertRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	quote := &model.SupplyQuote{
		SupplierID:  req.SupplierID,
		ISBN:        req.ISBN,
		SupplyPrice: req.SupplyPrice,
	}
	return s.repo.CreateQuote(ctx, quote)
}

func (s *catalogService) UpdateQuote(ctx context.Context, req model.QuoteUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	quote := &model.SupplyQuote{
		SupplierID:  req.SupplierID,
		ISBN:        req.ISBN,
		SupplyPrice: req.SupplyPrice,
	}
	return s.repo.UpdateQuote(ctx, quote)
}

func (s *catalogService) DeleteQuote(ctx context.Context, req model.QuoteDeleteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.DeleteQuote(ctx, req.SupplierID, req.ISBN)
}

func (s *catalogService) SelectQuotes(ctx context.Context, q ListQuery) ([]model.QuoteRow, int, error) {
	params := normalize(q, quoteSortColumns, "isbn", listing.DirAsc)
	return s.repo.ListQuotes(ctx, params)
}
