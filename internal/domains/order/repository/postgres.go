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
	"bookstore-backoffice/internal/domains/order/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/internal/shared/utils"
	pkgdb "bookstore-backoffice/pkg/database"
	"bookstore-backoffice/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pkgdb.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) OrderIDExists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM t_order WHERE order_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe order id: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetListPriceWithTx(ctx context.Context, tx pgx.Tx, isbn string) (decimal.Decimal, bool, error) {
	const query = `SELECT price FROM t_book WHERE isbn = $1`

	var price decimal.Decimal
	err := tx.QueryRow(ctx, query, isbn).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get list price: %w", err)
	}
	return price, true, nil
}

func (r *postgresRepository) InsertOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	const query = `
		INSERT INTO t_order (order_id, order_time, user_id)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, order.OrderID, order.OrderTime, order.UserID); err != nil {
		logger.Error("InsertOrder: database error", err)
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *postgresRepository) InsertOrderDetailWithTx(ctx context.Context, tx pgx.Tx, detail *model.OrderDetail) error {
	const query = `
		INSERT INTO t_order_detail (order_id, isbn, order_qty, order_price)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.Exec(ctx, query, detail.OrderID, detail.ISBN, detail.OrderQty, detail.OrderPrice)
	if err != nil {
		logger.Error("InsertOrderDetail: database error", err)
		return fmt.Errorf("failed to insert order detail: %w", err)
	}
	return nil
}

func (r *postgresRepository) AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error) {
	return inventory.Adjust(ctx, tx, isbn, delta)
}

func (r *postgresRepository) ListOrders(ctx context.Context, params listing.Params) ([]model.OrderRow, int, error) {
	conds := []string{}
	args := []any{}
	idx := 1

	if params.Keyword != "" {
		// Keyword matches the operator name or any line's book.
		conds = append(conds, fmt.Sprintf(`(u.username ILIKE $%d OR EXISTS (
			SELECT 1 FROM t_order_detail d
			INNER JOIN t_book b ON d.isbn = b.isbn
			WHERE d.order_id = o.order_id AND (b.isbn ILIKE $%d OR b.title ILIKE $%d)
		))`, idx, idx, idx))
		args = append(args, "%"+params.Keyword+"%")
		idx++
	}
	if params.StartTime != nil {
		conds = append(conds, fmt.Sprintf("o.order_time >= $%d", idx))
		args = append(args, *params.StartTime)
		idx++
	}
	if params.EndTime != nil {
		conds = append(conds, fmt.Sprintf("o.order_time <= $%d", idx))
		args = append(args, *params.EndTime)
		idx++
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + utils.JoinWithAnd(conds)
	}

	const from = `
		FROM t_order o
		INNER JOIN t_user u ON o.user_id = u.user_id
	`

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListOrders: count", err)
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	headerQuery := fmt.Sprintf(`
		SELECT o.order_id, o.order_time, o.user_id, u.username
		%s
		%s
		ORDER BY %s %s
		LIMIT %d
	`, from, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, headerQuery, args...)
	if err != nil {
		logger.Error("ListOrders: database error", err)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	list := []model.OrderRow{}
	ids := []int64{}
	index := map[int64]int{}
	for rows.Next() {
		var (
			row       model.OrderRow
			orderTime time.Time
		)
		if err := rows.Scan(&row.OrderID, &orderTime, &row.UserID, &row.Username); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		row.OrderTime = orderTime.Format(listing.TimeLayout)
		row.TotalAmount = decimal.Zero
		row.Details = []model.OrderDetailRow{}

		index[row.OrderID] = len(list)
		ids = append(ids, row.OrderID)
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return list, total, nil
	}

	const detailQuery = `
		SELECT d.order_id, d.isbn, b.title, d.order_qty, d.order_price
		FROM t_order_detail d
		INNER JOIN t_book b ON d.isbn = b.isbn
		WHERE d.order_id = ANY($1)
		ORDER BY d.order_id, d.isbn
	`
	detailRows, err := r.pool.Query(ctx, detailQuery, ids)
	if err != nil {
		logger.Error("ListOrders: details", err)
		return nil, 0, fmt.Errorf("failed to list order details: %w", err)
	}
	defer detailRows.Close()

	for detailRows.Next() {
		var (
			orderID int64
			d       model.OrderDetailRow
		)
		if err := detailRows.Scan(&orderID, &d.ISBN, &d.Title, &d.OrderQty, &d.OrderPrice); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order detail row: %w", err)
		}
		d.SubTotal = d.OrderPrice.Mul(decimal.NewFromInt(int64(d.OrderQty)))

		i := index[orderID]
		list[i].Details = append(list[i].Details, d)
		list[i].TotalAmount = list[i].TotalAmount.Add(d.SubTotal)
	}
	return list, total, detailRows.Err()
}
