package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/internal/shared/utils"
	pkgdb "bookstore-backoffice/pkg/database"
	"bookstore-backoffice/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) CatalogRepository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// BOOKS
// =====================================================

func (r *postgresRepository) CreateBook(ctx context.Context, book *model.Book) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const insertBook = `
			INSERT INTO t_book (isbn, title, author, publisher, price)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.Exec(ctx, insertBook,
			book.ISBN, book.Title, book.Author, book.Publisher, book.Price)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return model.ErrDuplicateBook
			}
			logger.Error("CreateBook: insert book", err)
			return fmt.Errorf("failed to insert book: %w", err)
		}

		const insertStock = `INSERT INTO t_stock (isbn, quantity) VALUES ($1, 0)`
		if _, err := tx.Exec(ctx, insertStock, book.ISBN); err != nil {
			logger.Error("CreateBook: insert stock", err)
			return fmt.Errorf("failed to insert stock record: %w", err)
		}

		return nil
	})
}

func (r *postgresRepository) UpdateBook(ctx context.Context, req model.BookUpdateRequest) error {
	sets := []string{}
	args := []any{}
	idx := 1

	if req.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", idx))
		args = append(args, *req.Title)
		idx++
	}
	if req.Author != nil {
		sets = append(sets, fmt.Sprintf("author = $%d", idx))
		args = append(args, *req.Author)
		idx++
	}
	if req.Publisher != nil {
		sets = append(sets, fmt.Sprintf("publisher = $%d", idx))
		args = append(args, *req.Publisher)
		idx++
	}
	if req.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", idx))
		args = append(args, *req.Price)
		idx++
	}

	if len(sets) == 0 {
		// Nothing to update; still report a missing book.
		_, err := r.GetBook(ctx, req.ISBN)
		return err
	}

	query := fmt.Sprintf("UPDATE t_book SET %s WHERE isbn = $%d", strings.Join(sets, ", "), idx)
	args = append(args, req.ISBN)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		logger.Error("UpdateBook: database error", err)
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteBook(ctx context.Context, isbn string) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Stock is removed by the FK cascade; quotes are removed here so
		// the behavior does not depend on schema options.
		if _, err := tx.Exec(ctx, `DELETE FROM t_supply_info WHERE isbn = $1`, isbn); err != nil {
			logger.Error("DeleteBook: delete quotes", err)
			return fmt.Errorf("failed to delete supply quotes: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM t_book WHERE isbn = $1`, isbn)
		if err != nil {
			logger.Error("DeleteBook: database error", err)
			return fmt.Errorf("failed to delete book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return nil
	})
}

func (r *postgresRepository) GetBook(ctx context.Context, isbn string) (*model.Book, error) {
	const query = `
		SELECT isbn, title, author, publisher, price
		FROM t_book
		WHERE isbn = $1
	`

	book := &model.Book{}
	err := r.pool.QueryRow(ctx, query, isbn).Scan(
		&book.ISBN, &book.Title, &book.Author, &book.Publisher, &book.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		logger.Error("GetBook: database error", err)
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) ListBooks(ctx context.Context, params listing.Params) ([]model.BookRow, int, error) {
	where := ""
	args := []any{}
	if params.Keyword != "" {
		where = "WHERE " + utils.JoinWithOr([]string{
			"isbn ILIKE $1",
			"title ILIKE $1",
			"author ILIKE $1",
			"publisher ILIKE $1",
		})
		args = append(args, "%"+params.Keyword+"%")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM t_book %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListBooks: count", err)
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	// SortField/SortDir come from the listing whitelist, never raw input.
	query := fmt.Sprintf(`
		SELECT isbn, title, COALESCE(author, ''), COALESCE(publisher, ''), price
		FROM t_book
		%s
		ORDER BY %s %s
		LIMIT %d
	`, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("ListBooks: database error", err)
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	list := []model.BookRow{}
	for rows.Next() {
		var b model.BookRow
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.Price); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book row: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

// =====================================================
// SUPPLIERS
// =====================================================

func (r *postgresRepository) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	const query = `
		INSERT INTO t_supplier (supplier_name)
		VALUES ($1)
		RETURNING supplier_id
	`
	if err := r.pool.QueryRow(ctx, query, supplier.SupplierName).Scan(&supplier.SupplierID); err != nil {
		logger.Error("CreateSupplier: database error", err)
		return fmt.Errorf("failed to insert supplier: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateSupplier(ctx context.Context, req model.SupplierUpdateRequest) error {
	const query = `UPDATE t_supplier SET supplier_name = $1 WHERE supplier_id = $2`

	tag, err := r.pool.Exec(ctx, query, req.SupplierName, req.SupplierID)
	if err != nil {
		logger.Error("UpdateSupplier: database error", err)
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSupplierNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteSupplier(ctx context.Context, supplierID int) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Purchases are write-once audit records; a referenced supplier
		// must not disappear from under them.
		var purchases int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM t_purchase WHERE supplier_id = $1`, supplierID).Scan(&purchases)
		if err != nil {
			logger.Error("DeleteSupplier: count purchases", err)
			return fmt.Errorf("failed to check purchase history: %w", err)
		}
		if purchases > 0 {
			return model.ErrSupplierHasPurchases
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM t_supply_info WHERE supplier_id = $1`, supplierID); err != nil {
			logger.Error("DeleteSupplier: delete quotes", err)
			return fmt.Errorf("failed to delete supply quotes: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM t_supplier WHERE supplier_id = $1`, supplierID)
		if err != nil {
			logger.Error("DeleteSupplier: database error", err)
			return fmt.Errorf("failed to delete supplier: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrSupplierNotFound
		}
		return nil
	})
}

func (r *postgresRepository) ListSuppliers(ctx context.Context, params listing.Params) ([]model.SupplierRow, int, error) {
	where := ""
	args := []any{}
	if params.Keyword != "" {
		where = "WHERE supplier_name ILIKE $1"
		args = append(args, "%"+params.Keyword+"%")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM t_supplier %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListSuppliers: count", err)
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT supplier_id, supplier_name
		FROM t_supplier
		%s
		ORDER BY %s %s
		LIMIT %d
	`, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("ListSuppliers: database error", err)
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	list := []model.SupplierRow{}
	for rows.Next() {
		var s model.SupplierRow
		if err := rows.Scan(&s.SupplierID, &s.SupplierName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// =====================================================
// SUPPLY QUOTES
// =====================================================

func (r *postgresRepository) CreateQuote(ctx context.Context, quote *model.SupplyQuote) error {
	const query = `
		INSERT INTO t_supply_info (supplier_id, isbn, supply_price)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, quote.SupplierID, quote.ISBN, quote.SupplyPrice)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return model.ErrDuplicateQuote
			case "23503": // foreign key violation
				if strings.Contains(pgErr.ConstraintName, "supplier") {
					return model.ErrSupplierNotFound
				}
				return model.ErrBookNotFound
			}
		}
		logger.Error("CreateQuote: database error", err)
		return fmt.Errorf("failed to insert supply quote: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateQuote(ctx context.Context, quote *model.SupplyQuote) error {
	const query = `
		UPDATE t_supply_info
		SET supply_price = $1
		WHERE supplier_id = $2 AND isbn = $3
	`
	tag, err := r.pool.Exec(ctx, query, quote.SupplyPrice, quote.SupplierID, quote.ISBN)
	if err != nil {
		logger.Error("UpdateQuote: database error", err)
		return fmt.Errorf("failed to update supply quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuoteNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteQuote(ctx context.Context, supplierID int, isbn string) error {
	const query = `DELETE FROM t_supply_info WHERE supplier_id = $1 AND isbn = $2`

	tag, err := r.pool.Exec(ctx, query, supplierID, isbn)
	if err != nil {
		logger.Error("DeleteQuote: database error", err)
		return fmt.Errorf("failed to delete supply quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuoteNotFound
	}
	return nil
}

func (r *postgresRepository) ListQuotes(ctx context.Context, params listing.Params) ([]model.QuoteRow, int, error) {
	where := ""
	args := []any{}
	if params.Keyword != "" {
		where = "WHERE " + utils.JoinWithOr([]string{
			"s.supplier_name ILIKE $1",
			"b.title ILIKE $1",
			"b.author ILIKE $1",
			"b.publisher ILIKE $1",
			"b.isbn ILIKE $1",
			"si.supply_price::text ILIKE $1",
		})
		args = append(args, "%"+params.Keyword+"%")
	}

	const from = `
		FROM t_supply_info si
		INNER JOIN t_supplier s ON si.supplier_id = s.supplier_id
		INNER JOIN t_book b ON si.isbn = b.isbn
	`

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("ListQuotes: count", err)
		return nil, 0, fmt.Errorf("failed to count supply quotes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT si.supplier_id, s.supplier_name, b.isbn, b.title,
		       COALESCE(b.author, ''), COALESCE(b.publisher, ''), si.supply_price
		%s
		%s
		ORDER BY %s %s
		LIMIT %d
	`, from, where, params.SortField, params.SortDir, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("ListQuotes: database error", err)
		return nil, 0, fmt.Errorf("failed to list supply quotes: %w", err)
	}
	defer rows.Close()

	list := []model.QuoteRow{}
	for rows.Next() {
		var q model.QuoteRow
		if err := rows.Scan(&q.SupplierID, &q.SupplierName, &q.ISBN, &q.Title,
			&q.Author, &q.Publisher, &q.SupplyPrice); err != nil {
			return nil, 0, fmt.Errorf("failed to scan supply quote row: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}
