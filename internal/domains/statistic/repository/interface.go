package repository

import (
	"context"
	"time"

	"bookstore-backoffice/internal/domains/statistic/model"
	"bookstore-backoffice/internal/shared/listing"
)

// StatisticRepository reads committed state only; it never opens a workflow
// transaction.
type StatisticRepository interface {
	// ListStockLevels returns per-book quantities. StockStatus is left for
	// the service to bucket.
	ListStockLevels(ctx context.Context, params listing.Params) ([]model.StockRow, int, error)

	// ListStockWithSales returns every book's quantity plus the sold
	// quantity since the given instant. MonthsOfSupply and WarningLevel are
	// left for the service.
	ListStockWithSales(ctx context.Context, since time.Time) ([]model.ShortageRow, error)

	// SalesRank aggregates sold quantity and revenue per book over
	// [start, end). orderBy is one of the aggregate column aliases,
	// whitelisted by the service.
	SalesRank(ctx context.Context, start, end time.Time, orderBy string, limit int) ([]model.RankRow, error)
}
