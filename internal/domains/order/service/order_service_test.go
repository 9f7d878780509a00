package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backoffice/internal/domains/inventory"
	"bookstore-backoffice/internal/domains/order/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/idgen"
)

type fakeTx struct{ pgx.Tx }

type fakeOrderRepo struct {
	listPrices map[string]decimal.Decimal
	stock      map[string]int
	orders     []model.Order
	details    []model.OrderDetail

	lastParams listing.Params
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		listPrices: map[string]decimal.Decimal{},
		stock:      map[string]int{},
	}
}

func (f *fakeOrderRepo) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	stockSnapshot := map[string]int{}
	for k, v := range f.stock {
		stockSnapshot[k] = v
	}
	orderCount, detailCount := len(f.orders), len(f.details)

	if err := fn(fakeTx{}); err != nil {
		f.stock = stockSnapshot
		f.orders = f.orders[:orderCount]
		f.details = f.details[:detailCount]
		return err
	}
	return nil
}

func (f *fakeOrderRepo) OrderIDExists(_ context.Context, id int64) (bool, error) {
	for _, o := range f.orders {
		if o.OrderID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) GetListPriceWithTx(_ context.Context, _ pgx.Tx, isbn string) (decimal.Decimal, bool, error) {
	price, ok := f.listPrices[isbn]
	return price, ok, nil
}

func (f *fakeOrderRepo) InsertOrderWithTx(_ context.Context, _ pgx.Tx, order *model.Order) error {
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) InsertOrderDetailWithTx(_ context.Context, _ pgx.Tx, detail *model.OrderDetail) error {
	f.details = append(f.details, *detail)
	return nil
}

func (f *fakeOrderRepo) AdjustStockWithTx(_ context.Context, _ pgx.Tx, isbn string, delta int) (int, error) {
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

func (f *fakeOrderRepo) ListOrders(_ context.Context, params listing.Params) ([]model.OrderRow, int, error) {
	f.lastParams = params
	return []model.OrderRow{}, 0, nil
}

const (
	isbnA = "9780134190440"
	isbnB = "9781491941959"
)

func newOrderFixture() (*fakeOrderRepo, OrderService) {
	repo := newFakeOrderRepo()
	repo.listPrices[isbnA] = decimal.NewFromFloat(20.00)
	repo.listPrices[isbnB] = decimal.NewFromFloat(35.50)
	repo.stock[isbnA] = 10
	repo.stock[isbnB] = 2
	return repo, NewOrderService(repo, idgen.New(), nil)
}

func TestInsertOrderMultiLine(t *testing.T) {
	repo, svc := newOrderFixture()

	result, err := svc.InsertOrder(context.Background(), 7, model.OrderInsertRequest{
		Details: []model.OrderLineRequest{
			{ISBN: isbnA, Qty: 4},
			{ISBN: isbnB, Qty: 1},
		},
	})
	require.NoError(t, err)

	// 4*20.00 + 1*35.50
	assert.True(t, result.TotalAmount.Equal(decimal.NewFromFloat(115.50)), "got %s", result.TotalAmount)
	assert.Equal(t, 2, result.DetailCount)
	assert.Equal(t, 6, repo.stock[isbnA])
	assert.Equal(t, 1, repo.stock[isbnB])

	require.Len(t, repo.details, 2)
	assert.True(t, repo.details[0].OrderPrice.Equal(decimal.NewFromFloat(20.00)))
}

func TestInsertOrderInsufficientStockRollsBack(t *testing.T) {
	repo, svc := newOrderFixture()

	_, err := svc.InsertOrder(context.Background(), 7, model.OrderInsertRequest{
		Details: []model.OrderLineRequest{
			{ISBN: isbnA, Qty: 4},
			{ISBN: isbnB, Qty: 3},
		},
	})

	var insufficient *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, isbnB, insufficient.ISBN)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// The first line's decrement must not survive the second line's failure.
	assert.Equal(t, 10, repo.stock[isbnA])
	assert.Equal(t, 2, repo.stock[isbnB])
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.details)
}

func TestInsertOrderUnknownBook(t *testing.T) {
	repo, svc := newOrderFixture()

	_, err := svc.InsertOrder(context.Background(), 7, model.OrderInsertRequest{
		Details: []model.OrderLineRequest{{ISBN: "9999999999999", Qty: 1}},
	})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.Empty(t, repo.orders)
}

func TestInsertOrderRejectsDuplicateLines(t *testing.T) {
	repo, svc := newOrderFixture()

	_, err := svc.InsertOrder(context.Background(), 7, model.OrderInsertRequest{
		Details: []model.OrderLineRequest{
			{ISBN: isbnA, Qty: 1},
			{ISBN: isbnA, Qty: 2},
		},
	})
	assert.Error(t, err)
	assert.Empty(t, repo.orders)
	assert.Equal(t, 10, repo.stock[isbnA])
}

func TestInsertOrderRejectsEmptyDetails(t *testing.T) {
	_, svc := newOrderFixture()

	_, err := svc.InsertOrder(context.Background(), 7, model.OrderInsertRequest{})
	assert.Error(t, err)
}

func TestSelectOrdersNormalizesSort(t *testing.T) {
	repo, svc := newOrderFixture()

	_, _, err := svc.SelectOrders(context.Background(), ListQuery{Sort: "bogus", Limit: 5000})
	require.NoError(t, err)

	assert.Equal(t, "o.order_time", repo.lastParams.SortField)
	assert.Equal(t, listing.DirDesc, repo.lastParams.SortDir)
	assert.Equal(t, listing.DefaultLimit, repo.lastParams.Limit)
}
