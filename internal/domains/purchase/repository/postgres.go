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
	"bookstore-backoffice/internal/domains/purchase/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/internal/shared/utils"
	pkgdb "bookstore-backoffice/pkg/database"
	"bookstore-backoffice/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pkgdb.WithTransaction(ctx, r.pool, fn)
}

func (r *postgresRepository) PurchaseIDExists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM t_purchase WHERE purchase_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe purchase id: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SupplierExistsWithTx(ctx context.Context, tx pgx.Tx, supplierID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM t_supplier WHERE supplier_id = $1)`

	var exists bool
	if err := tx.QueryRow(ctx, query, supplierID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check supplier: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetQuotePriceWithTx(ctx context.Context, tx pgx.Tx, supplierID int, isbn string) (decimal.Decimal, bool, error) {
	const query = `
		SELECT supply_price
		FROM t_supply_info
		WHERE supplier_id = $1 AND isbn = $2
	`

	var price decimal.Decimal
	err := tx.QueryRow(ctx, query, supplierID, isbn).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get supply quote: %w", err)
	}
	return price, true, nil
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

func (r *postgresRepository) InsertPurchaseWithTx(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) error {
	const query = `
		INSERT INTO t_purchase (purchase_id, supplier_id, isbn, purchase_qty, purchase_price, purchase_time, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.Exec(ctx, query,
		purchase.PurchaseID, purchase.SupplierID, purchase.ISBN,
		purchase.PurchaseQty, purchase.PurchasePrice, purchase.PurchaseTime, purchase.UserID)
	if err != nil {
		logger.Error("InsertPurchase: database error", err)
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

func (r *postgresRepository) AdjustStockWithTx(ctx context.Context, tx pgx.Tx, isbn string, delta int) (int, error) {
	return inventory.Adjust(ctx, tx, isbn, delta)
}

func (r *postgresRepository) ListPurchases(ctx context.Context, params listing.Params) ([]model.PurchaseRow, int, error) {
	conds := []string{}
	args := []any{}
	idx := 1

	if params.Keyword != "" {
		conds = append(conds, "("+utils.JoinWithOr([]string{
			fmt.Sprintf("s.supplier_name ILIKE $%d", idx),
			fmt.Sprintf("b.title ILIKE $%d", idx),
			fmt.Sprintf("b.isbn ILIKE $%d", idx),
			fmt.Sprintf("u.username ILIKE $%d", idx),
		})+")")
		args = append(args, "%"+params.Keyword+"%")
		idx++
	}
	if params.StartTime != nil {
		conds = append(conds, fmt.Sprintf("p.purchase_time >= $%d", idx))
		args = append(args, *params.StartTime)
		idx++
	}
	if params.EndTime != nil {
		conds = append(conds, fmt.Sprintf("p.purchase_time <= $%d", idx))
		args = append(args, *params.EndTime)
		idx++
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + utils.JoinWithAnd(conds)
	}

	const from = `
		FROM t_purchase p
		INNER JOIN t_supplier s ON p.supplier_id = s.supplier_id
		INNER JOIN t_book b ON p.isbn = b.isbn
		INNER JOIN t_user u ON p.user_id = u.user_id
	`

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListPurchases: count", err)
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT p.purchase_id, p.supplier_id, s.supplier_name, p.isbn, b.title,
		       p.purchase_qty, p.purchase_price, p.purchase_time, p.user_id, u.username
		%s
		%s
		ORDER BY %s %s
		LIMIT %d
	`, from, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("ListPurchases: database error", err)
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	list := []model.PurchaseRow{}
	for rows.Next() {
		var (
			row          model.PurchaseRow
			purchaseTime time.Time
		)
		if err := rows.Scan(&row.PurchaseID, &row.SupplierID, &row.SupplierName,
			&row.ISBN, &row.Title, &row.PurchaseQty, &row.PurchasePrice,
			&purchaseTime, &row.UserID, &row.Username); err != nil {
			return nil, 0, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		row.PurchaseTime = purchaseTime.Format(listing.TimeLayout)
		row.TotalAmount = row.PurchasePrice.Mul(decimal.NewFromInt(int64(row.PurchaseQty)))
		list = append(list, row)
	}
	return list, total, rows.Err()
}
