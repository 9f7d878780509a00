package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-backoffice/internal/domains/inventory"
	"bookstore-backoffice/internal/domains/order/model"
	"bookstore-backoffice/internal/domains/order/service"
	"bookstore-backoffice/internal/shared/middleware"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

func (h *OrderHandler) InsertOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required.")
		return
	}

	var req model.OrderInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	result, err := h.service.InsertOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *OrderHandler) SelectOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := service.ListQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Start:   c.Query("start_time"),
		End:     c.Query("end_time"),
	}

	rows, count, err := h.service.SelectOrders(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Rejected(c, err.Error())
		return
	}

	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		response.Rejected(c, fmt.Sprintf("Insufficient stock for %s: requested %d, available %d.",
			insufficient.ISBN, insufficient.Requested, insufficient.Available))
	case errors.Is(err, model.ErrBookNotFound), errors.Is(err, inventory.ErrStockNotFound):
		response.NotFound(c, "Book not found.")
	default:
		logger.Error("order operation failed", err)
		response.Failure(c)
	}
}
