package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-backoffice/internal/domains/user/model"
	"bookstore-backoffice/internal/domains/user/service"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.Rejected(c, err.Error())
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Rejected(c, "Invalid username or password.")
		default:
			logger.Error("login failed", err)
			response.Failure(c)
		}
		return
	}
	response.Success(c, result)
}
