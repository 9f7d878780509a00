package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backoffice/internal/domains/inventory"
	"bookstore-backoffice/internal/domains/purchase/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/idgen"
)

type fakeTx struct{ pgx.Tx }

type quoteKey struct {
	supplierID int
	isbn       string
}

type fakePurchaseRepo struct {
	suppliers  map[int]bool
	listPrices map[string]decimal.Decimal
	quotes     map[quoteKey]decimal.Decimal
	stock      map[string]int
	purchases  []model.Purchase

	lastParams listing.Params
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		suppliers:  map[int]bool{},
		listPrices: map[string]decimal.Decimal{},
		quotes:     map[quoteKey]decimal.Decimal{},
		stock:      map[string]int{},
	}
}

func (f *fakePurchaseRepo) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	stockSnapshot := map[string]int{}
	for k, v := range f.stock {
		stockSnapshot[k] = v
	}
	purchaseCount := len(f.purchases)

	if err := fn(fakeTx{}); err != nil {
		f.stock = stockSnapshot
		f.purchases = f.purchases[:purchaseCount]
		return err
	}
	return nil
}

func (f *fakePurchaseRepo) PurchaseIDExists(_ context.Context, id int64) (bool, error) {
	for _, p := range f.purchases {
		if p.PurchaseID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePurchaseRepo) SupplierExistsWithTx(_ context.Context, _ pgx.Tx, supplierID int) (bool, error) {
	return f.suppliers[supplierID], nil
}

func (f *fakePurchaseRepo) GetQuotePriceWithTx(_ context.Context, _ pgx.Tx, supplierID int, isbn string) (decimal.Decimal, bool, error) {
	price, ok := f.quotes[quoteKey{supplierID, isbn}]
	return price, ok, nil
}

func (f *fakePurchaseRepo) GetListPriceWithTx(_ context.Context, _ pgx.Tx, isbn string) (decimal.Decimal, bool, error) {
	price, ok := f.listPrices[isbn]
	return price, ok, nil
}

func (f *fakePurchaseRepo) InsertPurchaseWithTx(_ context.Context, _ pgx.Tx, purchase *model.Purchase) error {
	f.purchases = append(f.purchases, *purchase)
	return nil
}

func (f *fakePurchaseRepo) AdjustStockWithTx(_ context.Context, _ pgx.Tx, isbn string, delta int) (int, error) {
	current, ok := f.stock[isbn]
	if !ok {
		return 0, inventory.ErrStockNotFound
	}
	next := current + delta
	if next < 0 {
		return 0, &inventory.InsufficientStockError{ISBN: isbn, Requested: -delta, Available: current}
	}
	f.stock[isbn] = next
	return next, nil
}

func (f *fakePurchaseRepo) ListPurchases(_ context.Context, params listing.Params) ([]model.PurchaseRow, int, error) {
	f.lastParams = params
	return []model.PurchaseRow{}, 0, nil
}

const testISBN = "9780134190440"

func newPurchaseFixture() (*fakePurchaseRepo, PurchaseService) {
	repo := newFakePurchaseRepo()
	repo.suppliers[1] = true
	repo.listPrices[testISBN] = decimal.NewFromFloat(20.00)
	repo.stock[testISBN] = 0
	return repo, NewPurchaseService(repo, idgen.New(), nil)
}

func TestInsertPurchaseUsesQuotePrice(t *testing.T) {
	repo, svc := newPurchaseFixture()
	repo.quotes[quoteKey{1, testISBN}] = decimal.NewFromFloat(15.00)

	result, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        testISBN,
		PurchaseQty: 10,
	})
	require.NoError(t, err)

	assert.True(t, result.PurchasePrice.Equal(decimal.NewFromFloat(15.00)), "got %s", result.PurchasePrice)
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromFloat(150.00)), "got %s", result.TotalAmount)
	assert.Equal(t, 10, repo.stock[testISBN])

	require.Len(t, repo.purchases, 1)
	assert.Equal(t, result.PurchaseID, repo.purchases[0].PurchaseID)
	assert.Equal(t, 7, repo.purchases[0].UserID)
}

func TestInsertPurchaseFallsBackToListPrice(t *testing.T) {
	repo, svc := newPurchaseFixture()

	result, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        testISBN,
		PurchaseQty: 3,
	})
	require.NoError(t, err)

	assert.True(t, result.PurchasePrice.Equal(decimal.NewFromFloat(20.00)), "got %s", result.PurchasePrice)
	assert.Equal(t, 3, repo.stock[testISBN])
}

func TestInsertPurchasePriceUndeterminable(t *testing.T) {
	repo, svc := newPurchaseFixture()
	repo.listPrices[testISBN] = decimal.Zero

	_, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        testISBN,
		PurchaseQty: 3,
	})
	assert.ErrorIs(t, err, model.ErrPriceUndeterminable)
	assert.Equal(t, 0, repo.stock[testISBN])
	assert.Empty(t, repo.purchases)
}

func TestInsertPurchaseUnknownSupplier(t *testing.T) {
	repo, svc := newPurchaseFixture()

	_, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  99,
		ISBN:        testISBN,
		PurchaseQty: 3,
	})
	assert.ErrorIs(t, err, model.ErrSupplierNotFound)
	assert.Empty(t, repo.purchases)
}

func TestInsertPurchaseUnknownBook(t *testing.T) {
	repo, svc := newPurchaseFixture()

	_, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        "9999999999999",
		PurchaseQty: 3,
	})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.Empty(t, repo.purchases)
}

func TestInsertPurchaseRollsBackOnStockFailure(t *testing.T) {
	repo, svc := newPurchaseFixture()
	// Book priced but its ledger row is gone; the header insert must not
	// survive the failed increment.
	delete(repo.stock, testISBN)

	_, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        testISBN,
		PurchaseQty: 3,
	})
	assert.ErrorIs(t, err, inventory.ErrStockNotFound)
	assert.Empty(t, repo.purchases)
}

func TestInsertPurchaseValidation(t *testing.T) {
	repo, svc := newPurchaseFixture()

	_, err := svc.InsertPurchase(context.Background(), 7, model.PurchaseInsertRequest{
		SupplierID:  1,
		ISBN:        testISBN,
		PurchaseQty: 0,
	})
	assert.Error(t, err)
	assert.Empty(t, repo.purchases)
}

func TestSelectPurchasesNormalizesSort(t *testing.T) {
	repo, svc := newPurchaseFixture()

	_, _, err := svc.SelectPurchases(context.Background(), ListQuery{
		Sort: "drop table", Dir: "up", Limit: -1,
	})
	require.NoError(t, err)

	assert.Equal(t, "p.purchase_time", repo.lastParams.SortField)
	assert.Equal(t, listing.DirDesc, repo.lastParams.SortDir)
	assert.Equal(t, listing.DefaultLimit, repo.lastParams.Limit)
}
