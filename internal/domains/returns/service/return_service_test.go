package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backoffice/internal/domains/inventory"
	"bookstore-backoffice/internal/domains/returns/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/idgen"
)

type fakeTx struct{ pgx.Tx }

type orderLineKey struct {
	orderID int64
	isbn    string
}

type fakeReturnRepo struct {
	orders  map[int64]bool
	sold    map[orderLineKey]int
	stock   map[string]int
	returns []model.Return
	details []model.ReturnDetail

	lastParams listing.Params
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{
		orders: map[int64]bool{},
		sold:   map[orderLineKey]int{},
		stock:  map[string]int{},
	}
}

func (f *fakeReturnRepo) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	stockSnapshot := map[string]int{}
	for k, v := range f.stock {
		stockSnapshot[k] = v
	}
	returnCount, detailCount := len(f.returns), len(f.details)

	if err := fn(fakeTx{}); err != nil {
		f.stock = stockSnapshot
		f.returns = f.returns[:returnCount]
		f.details = f.details[:detailCount]
		return err
	}
	return nil
}

func (f *fakeReturnRepo) ReturnIDExists(_ context.Context, id int64) (bool, error) {
	for _, r := range f.returns {
		if r.ReturnID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReturnRepo) OrderExistsWithTx(_ context.Context, _ pgx.Tx, orderID int64) (bool, error) {
	return f.orders[orderID], nil
}

func (f *fakeReturnRepo) GetSoldQtyWithTx(_ context.Context, _ pgx.Tx, orderID int64, isbn string) (int, bool, error) {
	qty, ok := f.sold[orderLineKey{orderID, isbn}]
	return qty, ok, nil
}

func (f *fakeReturnRepo) SumReturnedQtyWithTx(_ context.Context, _ pgx.Tx, orderID int64, isbn string) (int, error) {
	total := 0
	for _, d := range f.details {
		for _, r := range f.returns {
			if r.ReturnID == d.ReturnID && r.OrderID == orderID && d.ISBN == isbn {
				total += d.ReturnQty
			}
		}
	}
	return total, nil
}

func (f *fakeReturnRepo) InsertReturnWithTx(_ context.Context, _ pgx.Tx, ret *model.Return) error {
	f.returns = append(f.returns, *ret)
	return nil
}

func (f *fakeReturnRepo) InsertReturnDetailWithTx(_ context.Context, _ pgx.Tx, detail *model.ReturnDetail) error {
	f.details = append(f.details, *detail)
	return nil
}

func (f *fakeReturnRepo) AdjustStockWithTx(_ context.Context, _ pgx.Tx, isbn string, delta int) (int, error) {
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

func (f *fakeReturnRepo) ListReturns(_ context.Context, params listing.Params) ([]model.ReturnRow, int, error) {
	f.lastParams = params
	return []model.ReturnRow{}, 0, nil
}

const (
	testISBN    = "9780134190440"
	testOrderID = int64(20260314150926001)
)

func newReturnFixture() (*fakeReturnRepo, ReturnService) {
	repo := newFakeReturnRepo()
	repo.orders[testOrderID] = true
	repo.sold[orderLineKey{testOrderID, testISBN}] = 4
	repo.stock[testISBN] = 6
	return repo, NewReturnService(repo, idgen.New(), nil)
}

func TestInsertReturnRestocks(t *testing.T) {
	repo, svc := newReturnFixture()

	result, err := svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: testOrderID,
		Details: []model.ReturnLineRequest{{ISBN: testISBN, ReturnQty: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.DetailCount)
	assert.Equal(t, 8, repo.stock[testISBN])
	require.Len(t, repo.returns, 1)
	assert.Equal(t, testOrderID, repo.returns[0].OrderID)
}

func TestInsertReturnCumulativeCap(t *testing.T) {
	repo, svc := newReturnFixture()

	_, err := svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: testOrderID,
		Details: []model.ReturnLineRequest{{ISBN: testISBN, ReturnQty: 2}},
	})
	require.NoError(t, err)

	// 2 of 4 already returned; 3 more exceeds the sold quantity.
	_, err = svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: testOrderID,
		Details: []model.ReturnLineRequest{{ISBN: testISBN, ReturnQty: 3}},
	})

	var exceeds *model.ReturnExceedsSoldError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, testOrderID, exceeds.OrderID)
	assert.Equal(t, 3, exceeds.Requested)
	assert.Equal(t, 2, exceeds.Remaining)

	assert.Equal(t, 8, repo.stock[testISBN])
	assert.Len(t, repo.returns, 1)
}

func TestInsertReturnExceedsInOneRequest(t *testing.T) {
	repo, svc := newReturnFixture()

	_, err := svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: testOrderID,
		Details: []model.ReturnLineRequest{{ISBN: testISBN, ReturnQty: 5}},
	})

	var exceeds *model.ReturnExceedsSoldError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, 4, exceeds.Remaining)
	assert.Equal(t, 6, repo.stock[testISBN])
	assert.Empty(t, repo.returns)
}

func TestInsertReturnUnknownOrder(t *testing.T) {
	repo, svc := newReturnFixture()

	_, err := svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: 42,
		Details: []model.ReturnLineRequest{{ISBN: testISBN, ReturnQty: 1}},
	})
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	assert.Empty(t, repo.returns)
}

func TestInsertReturnUnknownOrderLine(t *testing.T) {
	repo, svc := newReturnFixture()

	_, err := svc.InsertReturn(context.Background(), 7, model.ReturnInsertRequest{
		OrderID: testOrderID,
		Details: []model.ReturnLineRequest{{ISBN: "9781491941959", ReturnQty: 1}},
	})
	assert.ErrorIs(t, err, model.ErrOrderLineNotFound)
	assert.Empty(t, repo.returns)
	assert.Equal(t, 6, repo.stock[testISBN])
}

func TestSelectReturnsNormalizesSort(t *testing.T) {
	repo, svc := newReturnFixture()

	_, _, err := svc.SelectReturns(context.Background(), ListQuery{Sort: "nope", Dir: "sideways"})
	require.NoError(t, err)

	assert.Equal(t, "r.return_time", repo.lastParams.SortField)
	assert.Equal(t, listing.DirDesc, repo.lastParams.SortDir)
}
