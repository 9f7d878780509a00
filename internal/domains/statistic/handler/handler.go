package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-backoffice/internal/domains/statistic/model"
	"bookstore-backoffice/internal/domains/statistic/service"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type StatisticHandler struct {
	service service.StatisticService
}

func NewStatisticHandler(svc service.StatisticService) *StatisticHandler {
	return &StatisticHandler{service: svc}
}

func (h *StatisticHandler) SelectStock(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := service.StockQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
	}

	rows, count, err := h.service.SelectStock(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

func (h *StatisticHandler) SelectShortage(c *gin.Context) {
	rows, count, err := h.service.SelectShortage(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

func (h *StatisticHandler) DailyRank(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.service.DailyRank(c.Request.Context(), c.Query("date"), c.Query("sort_by"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, len(rows), rows)
}

func (h *StatisticHandler) MonthlyRank(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.service.MonthlyRank(c.Request.Context(), c.Query("month"), c.Query("sort_by"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, len(rows), rows)
}

func (h *StatisticHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidMonth),
		errors.Is(err, model.ErrInvalidSortBy):
		response.Rejected(c, err.Error())
	default:
		logger.Error("statistic query failed", err)
		response.Failure(c)
	}
}
