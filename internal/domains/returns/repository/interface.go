package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookstore-backoffice/internal/domains/returns/model"
	"bookstore-backoffice/internal/shared/listing"
)

// ReturnRepository is the data-access contract for the return workflow. The
// ...WithTx methods run inside the transaction opened by WithinTx so the
// header, its lines and the stock increments commit or roll back as one
// unit.
type ReturnRepository interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	ReturnIDExists(ctx context.Context, id int64) (bool, error)

	OrderExistsWithTx(ctx context.Context, tx pgx.Tx, orderID int64) (bool, error)
	// GetSoldQtyWithTx reports the quantity the order line sold; found is
	// false when the line does not exist.
	GetSoldQtyWithTx(ctx context.Context, tx pgx.Tx, orderID int64, isbn string) (qty int, found bool, err error)
	// SumReturnedQtyWithTx totals the quantity already returned against the
	// order line across all prior returns.
	SumReturnedQtyWithTx(ctx context.Context, tx pgx.Tx, orderID int64, isbn string) (int, error)
	InsertReturnWithTx(ctx context.Context, tx pgx.Tx, ret *model.Return) error
	InsertReturnDetailWithTx(ctx context.Context, tx pgx.Tx, detail *model.ReturnDetail) error
	AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error)

	ListReturns(ctx context.Context, params listing.Params) ([]model.ReturnRow, int, error)
}
