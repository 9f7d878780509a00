package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore-backoffice/internal/domains/purchase/model"
	"bookstore-backoffice/internal/domains/purchase/repository"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/cache"
	"bookstore-backoffice/pkg/idgen"
	"bookstore-backoffice/pkg/logger"
)

// StockCachePattern names the cached statistic views a stock mutation makes
// stale.
const StockCachePattern = "statistic:stock:*"

type ListQuery struct {
	Keyword string
	Limit   int
	Sort    string
	Dir     string
	Start   string
	End     string
}

type PurchaseService interface {
	InsertPurchase(ctx context.Context, userID int, req model.PurchaseInsertRequest) (*model.PurchaseInsertResult, error)
	SelectPurchases(ctx context.Context, q ListQuery) ([]model.PurchaseRow, int, error)
}

var purchaseSortColumns = map[string]string{
	"purchase_id":    "p.purchase_id",
	"supplier_name":  "s.supplier_name",
	"isbn":           "p.isbn",
	"title":          "b.title",
	"purchase_qty":   "p.purchase_qty",
	"purchase_price": "p.purchase_price",
	"purchase_time":  "p.purchase_time",
	"username":       "u.username",
}

type purchaseService struct {
	repo  repository.PurchaseRepository
	idgen *idgen.Generator
	cache cache.Cache
}

func NewPurchaseService(repo repository.PurchaseRepository, gen *idgen.Generator, c cache.Cache) PurchaseService {
	return &purchaseService{repo: repo, idgen: gen, cache: c}
}

// InsertPurchase runs the procurement workflow: resolve the unit price,
// assign an id, then record the header and increment stock in one
// transaction. Price resolution prefers the supplier's quote and falls back
// to the book's list price.
func (s *purchaseService) InsertPurchase(ctx context.Context, userID int, req model.PurchaseInsertRequest) (*model.PurchaseInsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	purchaseID, err := s.idgen.Next(ctx, s.repo.PurchaseIDExists)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		PurchaseID:   purchaseID,
		SupplierID:   req.SupplierID,
		ISBN:         req.ISBN,
		PurchaseQty:  req.PurchaseQty,
		PurchaseTime: time.Now(),
		UserID:       userID,
	}

	err = s.repo.WithinTx(ctx, func(tx pgx.Tx) error {
		exists, err := s.repo.SupplierExistsWithTx(ctx, tx, req.SupplierID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrSupplierNotFound
		}

		listPrice, bookExists, err := s.repo.GetListPriceWithTx(ctx, tx, req.ISBN)
		if err != nil {
			return err
		}
		if !bookExists {
			return model.ErrBookNotFound
		}

		quotePrice, quoted, err := s.repo.GetQuotePriceWithTx(ctx, tx, req.SupplierID, req.ISBN)
		if err != nil {
			return err
		}
		switch {
		case quoted:
			purchase.PurchasePrice = quotePrice
		case listPrice.IsPositive():
			purchase.PurchasePrice = listPrice
		default:
			return model.ErrPriceUndeterminable
		}

		if err := s.repo.InsertPurchaseWithTx(ctx, tx, purchase); err != nil {
			return err
		}

		_, err = s.repo.AdjustStockWithTx(ctx, tx, req.ISBN, req.PurchaseQty)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStockCache(ctx)

	return &model.PurchaseInsertResult{
		PurchaseID:    purchase.PurchaseID,
		PurchaseQty:   purchase.PurchaseQty,
		PurchasePrice: purchase.PurchasePrice,
		TotalAmount:   purchase.TotalAmount(),
	}, nil
}

func (s *purchaseService) SelectPurchases(ctx context.Context, q ListQuery) ([]model.PurchaseRow, int, error) {
	fields := make([]string, 0, len(purchaseSortColumns))
	for f := range purchaseSortColumns {
		fields = append(fields, f)
	}

	params := listing.Normalize(q.Keyword, q.Limit, q.Sort, q.Dir, "purchase_time", listing.DirDesc, fields)
	params.SortField = purchaseSortColumns[params.SortField]
	params.ParseTimeRange(q.Start, q.End)

	return s.repo.ListPurchases(ctx, params)
}

// invalidateStockCache drops stale statistic views after a committed stock
// mutation. A cache failure never fails the workflow.
func (s *purchaseService) invalidateStockCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, StockCachePattern); err != nil {
		logger.Warn("failed to invalidate stock statistics cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
