package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookstore-backoffice/internal/domains/order/model"
	"bookstore-backoffice/internal/shared/listing"
)

// OrderRepository is the data-access contract for the sale workflow. The
// ...WithTx methods run inside the transaction opened by WithinTx so the
// header, its lines and the stock decrements commit or roll back as one
// unit.
type OrderRepository interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	OrderIDExists(ctx context.Context, id int64) (bool, error)

	GetListPriceWithTx(ctx context.Context, tx pgx.Tx, isbn string) (decimal.Decimal, bool, error)
	InsertOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error
	InsertOrderDetailWithTx(ctx context.Context, tx pgx.Tx, detail *model.OrderDetail) error
	AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error)

	ListOrders(ctx context.Context, params listing.Params) ([]model.OrderRow, int, error)
}
