package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-backoffice/internal/domains/statistic/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/internal/shared/utils"
	"bookstore-backoffice/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) StatisticRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListStockLevels(ctx context.Context, params listing.Params) ([]model.StockRow, int, error) {
	where := ""
	args := []any{}
	if params.Keyword != "" {
		where = "WHERE " + utils.JoinWithOr([]string{
			"b.isbn ILIKE $1",
			"b.title ILIKE $1",
		})
		args = append(args, "%"+params.Keyword+"%")
	}

	const from = `
		FROM t_stock st
		INNER JOIN t_book b ON st.isbn = b.isbn
	`

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListStockLevels: count", err)
		return nil, 0, fmt.Errorf("failed to count stock rows: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT b.isbn, b.title, st.quantity
		%s
		%s
		ORDER BY %s %s
		LIMIT %d
	`, from, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("ListStockLevels: database error", err)
		return nil, 0, fmt.Errorf("failed to list stock rows: %w", err)
	}
	defer rows.Close()

	list := []model.StockRow{}
	for rows.Next() {
		var row model.StockRow
		if err := rows.Scan(&row.ISBN, &row.Title, &row.Quantity); err != nil {
			return nil, 0, fmt.Errorf("failed to scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, total, rows.Err()
}

func (r *postgresRepository) ListStockWithSales(ctx context.Context, since time.Time) ([]model.ShortageRow, error) {
	const query = `
		SELECT b.isbn, b.title, st.quantity, COALESCE(s.sold, 0)
		FROM t_book b
		INNER JOIN t_stock st ON b.isbn = st.isbn
		LEFT JOIN (
			SELECT d.isbn, SUM(d.order_qty) AS sold
			FROM t_order_detail d
			INNER JOIN t_order o ON d.order_id = o.order_id
			WHERE o.order_time >= $1
			GROUP BY d.isbn
		) s ON s.isbn = b.isbn
		ORDER BY st.quantity ASC, b.isbn
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		logger.Error("ListStockWithSales: database error", err)
		return nil, fmt.Errorf("failed to list stock with sales: %w", err)
	}
	defer rows.Close()

	list := []model.ShortageRow{}
	for rows.Next() {
		var row model.ShortageRow
		if err := rows.Scan(&row.ISBN, &row.Title, &row.Quantity, &row.LastMonthSales); err != nil {
			return nil, fmt.Errorf("failed to scan shortage row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *postgresRepository) SalesRank(ctx context.Context, start, end time.Time, orderBy string, limit int) ([]model.RankRow, error) {
	// orderBy comes from the service whitelist, never raw input.
	query := fmt.Sprintf(`
		SELECT d.isbn, b.title,
		       SUM(d.order_qty) AS total_qty,
		       SUM(d.order_qty * d.order_price) AS total_amount
		FROM t_order_detail d
		INNER JOIN t_order o ON d.order_id = o.order_id
		INNER JOIN t_book b ON d.isbn = b.isbn
		WHERE o.order_time >= $1 AND o.order_time < $2
		GROUP BY d.isbn, b.title
		ORDER BY %s DESC, d.isbn
		LIMIT %d
	`, orderBy, limit)

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		logger.Error("SalesRank: database error", err)
		return nil, fmt.Errorf("failed to query sales rank: %w", err)
	}
	defer rows.Close()

	list := []model.RankRow{}
	for rows.Next() {
		var row model.RankRow
		if err := rows.Scan(&row.ISBN, &row.Title, &row.TotalQty, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan rank row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
