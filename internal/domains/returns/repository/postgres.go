package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookstore-backoffice/internal/domains/inventory"
	"bookstore-backoffice/internal/domains/returns/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/internal/shared/utils"
	pkgdb "bookstore-backoffice/pkg/database"
	"bookstore-backoffice/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ReturnRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pkgdb.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) ReturnIDExists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM t_return WHERE return_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe return id: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) OrderExistsWithTx(ctx context.Context, tx pgx.Tx, orderID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM t_order WHERE order_id = $1)`

	var exists bool
	if err := tx.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetSoldQtyWithTx(ctx context.Context, tx pgx.Tx, orderID int64, isbn string) (int, bool, error) {
	const query = `
		SELECT order_qty
		FROM t_order_detail
		WHERE order_id = $1 AND isbn = $2
	`

	var qty int
	err := tx.QueryRow(ctx, query, orderID, isbn).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get order line: %w", err)
	}
	return qty, true, nil
}

func (r *postgresRepository) SumReturnedQtyWithTx(ctx context.Context, tx pgx.Tx, orderID int64, isbn string) (int, error) {
	const query = `
		SELECT COALESCE(SUM(rd.return_qty), 0)
		FROM t_return_detail rd
		INNER JOIN t_return r ON rd.return_id = r.return_id
		WHERE r.order_id = $1 AND rd.isbn = $2
	`

	var total int
	if err := tx.QueryRow(ctx, query, orderID, isbn).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum returned quantity: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) InsertReturnWithTx(ctx context.Context, tx pgx.Tx, ret *model.Return) error {
	const query = `
		INSERT INTO t_return (return_id, order_id, reason, return_time, user_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.Exec(ctx, query, ret.ReturnID, ret.OrderID, ret.Reason, ret.ReturnTime, ret.UserID)
	if err != nil {
		logger.Error("InsertReturn: database error", err)
		return fmt.Errorf("failed to insert return: %w", err)
	}
	return nil
}

func (r *postgresRepository) InsertReturnDetailWithTx(ctx context.Context, tx pgx.Tx, detail *model.ReturnDetail) error {
	const query = `
		INSERT INTO t_return_detail (return_id, isbn, return_qty)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, detail.ReturnID, detail.ISBN, detail.ReturnQty); err != nil {
		logger.Error("InsertReturnDetail: database error", err)
		return fmt.Errorf("failed to insert return detail: %w", err)
	}
	return nil
}

func (r *postgresRepository) AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error) {
	return inventory.Adjust(ctx, tx, isbn, delta)
}

func (r *postgresRepository) ListReturns(ctx context.Context, params listing.Params) ([]model.ReturnRow, int, error) {
	conds := []string{}
	args := []any{}
	idx := 1

	if params.Keyword != "" {
		conds = append(conds, fmt.Sprintf(`(u.username ILIKE $%d OR EXISTS (
			SELECT 1 FROM t_return_detail rd
			INNER JOIN t_book b ON rd.isbn = b.isbn
			WHERE rd.return_id = r.return_id AND (b.isbn ILIKE $%d OR b.title ILIKE $%d)
		))`, idx, idx, idx))
		args = append(args, "%"+params.Keyword+"%")
		idx++
	}
	if params.StartTime != nil {
		conds = append(conds, fmt.Sprintf("r.return_time >= $%d", idx))
		args = append(args, *params.StartTime)
		idx++
	}
	if params.EndTime != nil {
		conds = append(conds, fmt.Sprintf("r.return_time <= $%d", idx))
		args = append(args, *params.EndTime)
		idx++
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + utils.JoinWithAnd(conds)
	}

	const from = `
		FROM t_return r
		INNER JOIN t_user u ON r.user_id = u.user_id
	`

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListReturns: count", err)
		return nil, 0, fmt.Errorf("failed to count returns: %w", err)
	}

	headerQuery := fmt.Sprintf(`
		SELECT r.return_id, r.order_id, COALESCE(r.reason, ''), r.return_time, r.user_id, u.username
		%s
		%s
		ORDER BY %s %s
		LIMIT %d
	`, from, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, headerQuery, args...)
	if err != nil {
		logger.Error("ListReturns: database error", err)
		return nil, 0, fmt.Errorf("failed to list returns: %w", err)
	}
	defer rows.Close()

	list := []model.ReturnRow{}
	ids := []int64{}
	index := map[int64]int{}
	for rows.Next() {
		var (
			row        model.ReturnRow
			returnTime time.Time
		)
		if err := rows.Scan(&row.ReturnID, &row.OrderID, &row.Reason,
			&returnTime, &row.UserID, &row.Username); err != nil {
			return nil, 0, fmt.Errorf("failed to scan return row: %w", err)
		}
		row.ReturnTime = returnTime.Format(listing.TimeLayout)
		row.Details = []model.ReturnDetailRow{}

		index[row.ReturnID] = len(list)
		ids = append(ids, row.ReturnID)
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return list, total, nil
	}

	// The refund price is the sold price on the original order line.
	const detailQuery = `
		SELECT rd.return_id, rd.isbn, b.title, rd.return_qty, od.order_price
		FROM t_return_detail rd
		INNER JOIN t_return r ON rd.return_id = r.return_id
		INNER JOIN t_book b ON rd.isbn = b.isbn
		INNER JOIN t_order_detail od ON od.order_id = r.order_id AND od.isbn = rd.isbn
		WHERE rd.return_id = ANY($1)
		ORDER BY rd.return_id, rd.isbn
	`
	detailRows, err := r.pool.Query(ctx, detailQuery, ids)
	if err != nil {
		logger.Error("ListReturns: details", err)
		return nil, 0, fmt.Errorf("failed to list return details: %w", err)
	}
	defer detailRows.Close()

	for detailRows.Next() {
		var (
			returnID int64
			d        model.ReturnDetailRow
		)
		if err := detailRows.Scan(&returnID, &d.ISBN, &d.Title, &d.ReturnQty, &d.RefundPrice); err != nil {
			return nil, 0, fmt.Errorf("failed to scan return detail row: %w", err)
		}
		d.RefundAmount = d.RefundPrice.Mul(decimal.NewFromInt(int64(d.ReturnQty)))

		i := index[returnID]
		list[i].Details = append(list[i].Details, d)
	}
	return list, total, detailRows.Err()
}
