package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-backoffice/internal/domains/purchase/model"
	"bookstore-backoffice/internal/domains/purchase/service"
	"bookstore-backoffice/internal/shared/middleware"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(svc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: svc}
}

func (h *PurchaseHandler) InsertPurchase(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required.")
		return
	}

	var req model.PurchaseInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	result, err := h.service.InsertPurchase(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *PurchaseHandler) SelectPurchases(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := service.ListQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Start:   c.Query("start_time"),
		End:     c.Query("end_time"),
	}

	rows, count, err := h.service.SelectPurchases(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

func (h *PurchaseHandler) respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Rejected(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrSupplierNotFound):
		response.NotFound(c, "Supplier not found.")
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found.")
	case errors.Is(err, model.ErrPriceUndeterminable):
		response.Rejected(c, "No supply quote or list price is available for this book.")
	default:
		logger.Error("purchase operation failed", err)
		response.Failure(c)
	}
}
