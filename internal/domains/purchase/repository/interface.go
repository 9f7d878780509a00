package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookstore-backoffice/internal/domains/purchase/model"
	"bookstore-backoffice/internal/shared/listing"
)

// PurchaseRepository is the data-access contract for the purchase workflow.
// The ...WithTx methods run inside the transaction opened by WithinTx so the
// header insert and the stock increment commit or roll back as one unit.
type PurchaseRepository interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	PurchaseIDExists(ctx context.Context, id int64) (bool, error)

	SupplierExistsWithTx(ctx context.Context, tx pgx.Tx, supplierID int) (bool, error)
	GetQuotePriceWithTx(ctx context.Context, tx pgx.Tx, supplierID int, isbn string) (decimal.Decimal, bool, error)
	GetListPriceWithTx(ctx context.Context, tx pgx.Tx, isbn string) (decimal.Decimal, bool, error)
	InsertPurchaseWithTx(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) error
	AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error)

	ListPurchases(ctx context.Context, params listing.Params) ([]model.PurchaseRow, int, error)
}
