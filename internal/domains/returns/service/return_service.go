package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"bookstore-backoffice/internal/domains/returns/model"
	"bookstore-backoffice/internal/domains/returns/repository"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/cache"
	"bookstore-backoffice/pkg/idgen"
	"bookstore-backoffice/pkg/logger"
)

// A return restocks books; sales totals keep the original sale.
const StockCachePattern = "statistic:stock:*"

type ListQuery struct {
	Keyword string
	Limit   int
	Sort    string
	Dir     string
	Start   string
	End     string
}

type ReturnService interface {
	InsertReturn(ctx context.Context, userID int, req model.ReturnInsertRequest) (*model.ReturnInsertResult, error)
	SelectReturns(ctx context.Context, q ListQuery) ([]model.ReturnRow, int, error)
}

var returnSortColumns = map[string]string{
	"return_id":   "r.return_id",
	"order_id":    "r.order_id",
	"return_time": "r.return_time",
	"username":    "u.username",
}

type returnService struct {
	repo  repository.ReturnRepository
	idgen *idgen.Generator
	cache cache.Cache
}

func NewReturnService(repo repository.ReturnRepository, gen *idgen.Generator, c cache.Cache) ReturnService {
	return &returnService{repo: repo, idgen: gen, cache: c}
}

// InsertReturn runs the refund workflow: every requested line must reference
// an existing order line, and its quantity plus all prior returns against
// that line must not exceed the quantity sold. The header, lines and stock
// increments commit as one transaction.
func (s *returnService) InsertReturn(ctx context.Context, userID int, req model.ReturnInsertRequest) (*model.ReturnInsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	returnID, err := s.idgen.Next(ctx, s.repo.ReturnIDExists)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithinTx(ctx, func(tx pgx.Tx) error {
		exists, err := s.repo.OrderExistsWithTx(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrOrderNotFound
		}

		ret := &model.Return{
			ReturnID:   returnID,
			OrderID:    req.OrderID,
			Reason:     req.Reason,
			ReturnTime: time.Now(),
			UserID:     userID,
		}
		if err := s.repo.InsertReturnWithTx(ctx, tx, ret); err != nil {
			return err
		}

		for _, line := range req.Details {
			sold, found, err := s.repo.GetSoldQtyWithTx(ctx, tx, req.OrderID, line.ISBN)
			if err != nil {
				return err
			}
			if !found {
				return model.ErrOrderLineNotFound
			}

			returned, err := s.repo.SumReturnedQtyWithTx(ctx, tx, req.OrderID, line.ISBN)
			if err != nil {
				return err
			}
			// The current return's own lines are already inserted below, so
			// the sum here covers prior returns only.
			remaining := sold - returned
			if line.ReturnQty > remaining {
				return &model.ReturnExceedsSoldError{
					OrderID:   req.OrderID,
					ISBN:      line.ISBN,
					Requested: line.ReturnQty,
					Remaining: remaining,
				}
			}

			detail := &model.ReturnDetail{
				ReturnID:  returnID,
				ISBN:      line.ISBN,
				ReturnQty: line.ReturnQty,
			}
			if err := s.repo.InsertReturnDetailWithTx(ctx, tx, detail); err != nil {
				return err
			}

			if _, err := s.repo.AdjustStockWithTx(ctx, tx, line.ISBN, line.ReturnQty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStockCache(ctx)

	return &model.ReturnInsertResult{
		ReturnID:    returnID,
		DetailCount: len(req.Details),
	}, nil
}

func (s *returnService) SelectReturns(ctx context.Context, q ListQuery) ([]model.ReturnRow, int, error) {
	fields := make([]string, 0, len(returnSortColumns))
	for f := range returnSortColumns {
		fields = append(fields, f)
	}

	params := listing.Normalize(q.Keyword, q.Limit, q.Sort, q.Dir, "return_time", listing.DirDesc, fields)
	params.SortField = returnSortColumns[params.SortField]
	params.ParseTimeRange(q.Start, q.End)

	return s.repo.ListReturns(ctx, params)
}

func (s *returnService) invalidateStockCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, StockCachePattern); err != nil {
		logger.Warn("failed to invalidate stock statistics cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
