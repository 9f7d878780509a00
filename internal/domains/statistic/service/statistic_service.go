package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookstore-backoffice/internal/domains/statistic/model"
	"bookstore-backoffice/internal/domains/statistic/repository"
	"bookstore-backoffice/internal/shared/listing"
	"bookstore-backoffice/pkg/cache"
	"bookstore-backoffice/pkg/logger"
)

const (
	stockSelectKey = "statistic:stock:select:%s:%d:%s:%s"
	shortageKey    = "statistic:stock:shortage"
	rankKey        = "statistic:sales:rank:%s:%s:%s:%d"

	cacheTTL = 5 * time.Minute
	// The worker refreshes the shortage view on a shorter cycle than this
	// TTL, so readers rarely miss.
	shortageTTL = 30 * time.Minute

	trailingWindow = 30 * 24 * time.Hour

	defaultRankLimit = 10
	maxRankLimit     = 100
)

type StockQuery struct {
	Keyword string
	Limit   int
	Sort    string
	Dir     string
}

type StatisticService interface {
	SelectStock(ctx context.Context, q StockQuery) ([]model.StockRow, int, error)
	SelectShortage(ctx context.Context) ([]model.ShortageRow, int, error)
	DailyRank(ctx context.Context, date, sortBy string, limit int) ([]model.RankRow, error)
	MonthlyRank(ctx context.Context, month, sortBy string, limit int) ([]model.RankRow, error)

	// RefreshShortage recomputes the shortage view and overwrites its cache
	// entry. The worker calls it on a schedule.
	RefreshShortage(ctx context.Context) error
}

var stockSortColumns = map[string]string{
	"isbn":     "b.isbn",
	"title":    "b.title",
	"quantity": "st.quantity",
}

var rankOrderColumns = map[string]string{
	"qty":    "total_qty",
	"amount": "total_amount",
}

// Severity order for the shortage list; lower sorts first.
var warningRank = map[string]int{
	model.WarningCritical: 0,
	model.WarningHigh:     1,
	model.WarningMedium:   2,
}

type statisticService struct {
	repo  repository.StatisticRepository
	cache cache.Cache
	now   func() time.Time
}

func NewStatisticService(repo repository.StatisticRepository, c cache.Cache) StatisticService {
	return &statisticService{repo: repo, cache: c, now: time.Now}
}

type cachedList[T any] struct {
	Count int `json:"count"`
	List  []T `json:"list"`
}

func (s *statisticService) SelectStock(ctx context.Context, q StockQuery) ([]model.StockRow, int, error) {
	fields := make([]string, 0, len(stockSortColumns))
	for f := range stockSortColumns {
		fields = append(fields, f)
	}
	params := listing.Normalize(q.Keyword, q.Limit, q.Sort, q.Dir, "quantity", listing.DirAsc, fields)

	key := fmt.Sprintf(stockSelectKey, params.Keyword, params.Limit, params.SortField, params.SortDir)
	var cached cachedList[model.StockRow]
	if s.readCache(ctx, key, &cached) {
		return cached.List, cached.Count, nil
	}

	params.SortField = stockSortColumns[params.SortField]
	list, total, err := s.repo.ListStockLevels(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].StockStatus = model.StockStatus(list[i].Quantity)
	}

	s.writeCache(ctx, key, cachedList[model.StockRow]{Count: total, List: list}, cacheTTL)
	return list, total, nil
}

func (s *statisticService) SelectShortage(ctx context.Context) ([]model.ShortageRow, int, error) {
	var cached cachedList[model.ShortageRow]
	if s.readCache(ctx, shortageKey, &cached) {
		return cached.List, cached.Count, nil
	}

	list, err := s.computeShortage(ctx)
	if err != nil {
		return nil, 0, err
	}

	s.writeCache(ctx, shortageKey, cachedList[model.ShortageRow]{Count: len(list), List: list}, shortageTTL)
	return list, len(list), nil
}

func (s *statisticService) RefreshShortage(ctx context.Context) error {
	list, err := s.computeShortage(ctx)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, shortageKey, cachedList[model.ShortageRow]{Count: len(list), List: list}, shortageTTL)
}

// computeShortage buckets every book by its depletion risk and keeps the
// rows that warrant attention, most urgent first.
func (s *statisticService) computeShortage(ctx context.Context) ([]model.ShortageRow, error) {
	since := s.now().Add(-trailingWindow)
	rows, err := s.repo.ListStockWithSales(ctx, since)
	if err != nil {
		return nil, err
	}

	list := []model.ShortageRow{}
	for _, row := range rows {
		mos := model.MonthsOfSupply(row.Quantity, row.LastMonthSales)
		row.MonthsOfSupply = model.FormatMonthsOfSupply(mos)
		row.WarningLevel = model.WarningLevel(row.Quantity, mos)
		if _, warns := warningRank[row.WarningLevel]; warns {
			list = append(list, row)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := warningRank[list[i].WarningLevel], warningRank[list[j].WarningLevel]
		if ri != rj {
			return ri < rj
		}
		return list[i].Quantity < list[j].Quantity
	})
	return list, nil
}

func (s *statisticService) DailyRank(ctx context.Context, date, sortBy string, limit int) ([]model.RankRow, error) {
	if date == "" {
		date = s.now().Format(listing.DateLayout)
	}
	day, err := time.Parse(listing.DateLayout, date)
	if err != nil {
		return nil, model.ErrInvalidDate
	}
	return s.rank(ctx, "daily", date, day, day.Add(24*time.Hour), sortBy, limit)
}

func (s *statisticService) MonthlyRank(ctx context.Context, month, sortBy string, limit int) ([]model.RankRow, error) {
	if month == "" {
		month = s.now().Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, model.ErrInvalidMonth
	}
	return s.rank(ctx, "monthly", month, start, start.AddDate(0, 1, 0), sortBy, limit)
}

func (s *statisticService) rank(ctx context.Context, window, windowKey string, start, end time.Time, sortBy string, limit int) ([]model.RankRow, error) {
	if sortBy == "" {
		sortBy = "qty"
	}
	orderBy, ok := rankOrderColumns[sortBy]
	if !ok {
		return nil, model.ErrInvalidSortBy
	}
	if limit <= 0 || limit > maxRankLimit {
		limit = defaultRankLimit
	}

	key := fmt.Sprintf(rankKey, window, windowKey, sortBy, limit)
	var cached cachedList[model.RankRow]
	if s.readCache(ctx, key, &cached) {
		return cached.List, nil
	}

	list, err := s.repo.SalesRank(ctx, start, end, orderBy, limit)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Rank = i + 1
	}

	s.writeCache(ctx, key, cachedList[model.RankRow]{Count: len(list), List: list}, cacheTTL)
	return list, nil
}

// readCache reports whether dest was filled. A cache error degrades to a
// miss.
func (s *statisticService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("statistics cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return hit
}

func (s *statisticService) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("statistics cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
