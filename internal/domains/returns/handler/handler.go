package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-backoffice/internal/domains/returns/model"
	"bookstore-backoffice/internal/domains/returns/service"
	"bookstore-backoffice/internal/shared/middleware"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type ReturnHandler struct {
	service service.ReturnService
}

func NewReturnHandler(svc service.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: svc}
}

func (h *ReturnHandler) InsertReturn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required.")
		return
	}

	var req model.ReturnInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	result, err := h.service.InsertReturn(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ReturnHandler) SelectReturns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := service.ListQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
		Start:   c.Query("start_time"),
		End:     c.Query("end_time"),
	}

	rows, count, err := h.service.SelectReturns(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

func (h *ReturnHandler) respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Rejected(c, err.Error())
		return
	}

	var exceeds *model.ReturnExceedsSoldError
	switch {
	case errors.As(err, &exceeds):
		response.Rejected(c, fmt.Sprintf("Return exceeds sold quantity for %s: requested %d, remaining %d.",
			exceeds.ISBN, exceeds.Requested, exceeds.Remaining))
	case errors.Is(err, model.ErrOrderNotFound):
		response.NotFound(c, "Order not found.")
	case errors.Is(err, model.ErrOrderLineNotFound):
		response.NotFound(c, "Order line not found.")
	default:
		logger.Error("return operation failed", err)
		response.Failure(c)
	}
}
