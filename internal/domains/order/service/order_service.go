package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookstore-backoffice/internal/domains/order/model"
	"bookstore-backoffice/internal/domains/order/repository"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/cache"
	"bookstore-backoffice/pkg/idgen"
	"bookstore-backoffice/pkg/logger"
)

// A committed sale changes both the stock views and the sales ranks.
const (
	StockCachePattern = "statistic:stock:*"
	SalesCachePattern = "statistic:sales:*"
)

type ListQuery struct {
	Keyword string
	Limit   int
	Sort    string
	Dir     string
	Start   string
	End     string
}

type OrderService interface {
	InsertOrder(ctx context.Context, userID int, req model.OrderInsertRequest) (*model.OrderInsertResult, error)
	SelectOrders(ctx context.Context, q ListQuery) ([]model.OrderRow, int, error)
}

var orderSortColumns = map[string]string{
	"order_id":   "o.order_id",
	"order_time": "o.order_time",
	"username":   "u.username",
}

type orderService struct {
	repo  repository.OrderRepository
	idgen *idgen.Generator
	cache cache.Cache
}

func NewOrderService(repo repository.OrderRepository, gen *idgen.Generator, c cache.Cache) OrderService {
	return &orderService{repo: repo, idgen: gen, cache: c}
}

// InsertOrder runs the sale workflow: assign an id, then record the header,
// each line at the book's current list price and the stock decrements in one
// transaction. Any line failing its stock check rolls the whole sale back.
func (s *orderService) InsertOrder(ctx context.Context, userID int, req model.OrderInsertRequest) (*model.OrderInsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	orderID, err := s.idgen.Next(ctx, s.repo.OrderIDExists)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	err = s.repo.WithinTx(ctx, func(tx pgx.Tx) error {
		order := &model.Order{
			OrderID:   orderID,
			OrderTime: time.Now(),
			UserID:    userID,
		}
		if err := s.repo.InsertOrderWithTx(ctx, tx, order); err != nil {
			return err
		}

		for _, line := range req.Details {
			price, exists, err := s.repo.GetListPriceWithTx(ctx, tx, line.ISBN)
			if err != nil {
				return err
			}
			if !exists {
				return model.ErrBookNotFound
			}

			detail := &model.OrderDetail{
				OrderID:    orderID,
				ISBN:       line.ISBN,
				OrderQty:   line.Qty,
				OrderPrice: price,
			}
			if err := s.repo.InsertOrderDetailWithTx(ctx, tx, detail); err != nil {
				return err
			}

			if _, err := s.repo.AdjustStockWithTx(ctx, tx, line.ISBN, -line.Qty); err != nil {
				return err
			}
			total = total.Add(detail.SubTotal())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)

	return &model.OrderInsertResult{
		OrderID:     orderID,
		TotalAmount: total,
		DetailCount: len(req.Details),
	}, nil
}

func (s *orderService) SelectOrders(ctx context.Context, q ListQuery) ([]model.OrderRow, int, error) {
	fields := make([]string, 0, len(orderSortColumns))
	for f := range orderSortColumns {
		fields = append(fields, f)
	}

	params := listing.Normalize(q.Keyword, q.Limit, q.Sort, q.Dir, "order_time", listing.DirDesc, fields)
	params.SortField = orderSortColumns[params.SortField]
	params.ParseTimeRange(q.Start, q.End)

	return s.repo.ListOrders(ctx, params)
}

func (s *orderService) invalidateCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{StockCachePattern, SalesCachePattern} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Warn("failed to invalidate statistics cache", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
		}
	}
}
