package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/domains/catalog/service"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/logger"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// listQuery pulls the shared select parameters out of the query string.
func listQuery(c *gin.Context) service.ListQuery {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return service.ListQuery{
		Keyword: c.Query("keyword"),
		Limit:   limit,
		Sort:    c.Query("sort"),
		Dir:     c.Query("dir"),
	}
}

// respondError translates catalog errors into the response envelope.
func respondError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Rejected(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "Book not found.")
	case errors.Is(err, model.ErrDuplicateBook):
		response.Rejected(c, "A book with this ISBN already exists.")
	case errors.Is(err, model.ErrSupplierNotFound):
		response.NotFound(c, "Supplier not found.")
	case errors.Is(err, model.ErrSupplierHasPurchases):
		response.Rejected(c, "Supplier has purchase history and cannot be deleted.")
	case errors.Is(err, model.ErrQuoteNotFound):
		response.NotFound(c, "Supply quote not found.")
	case errors.Is(err, model.ErrDuplicateQuote):
		response.Rejected(c, "A quote for this supplier and ISBN already exists.")
	default:
		logger.Error("catalog operation failed", err)
		response.Failure(c)
	}
}

// =====================================================
// BOOKS
// =====================================================

func (h *CatalogHandler) InsertBook(c *gin.Context) {
	var req model.BookInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.InsertBook(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	var req model.BookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.UpdateBook(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) DeleteBook(c *gin.Context) {
	var req model.BookDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) SelectBooks(c *gin.Context) {
	rows, count, err := h.service.SelectBooks(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

// =====================================================
// SUPPLIERS
// =====================================================

func (h *CatalogHandler) InsertSupplier(c *gin.Context) {
	var req model.SupplierInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	supplier, err := h.service.InsertSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"supplier_id": supplier.SupplierID})
}

func (h *CatalogHandler) UpdateSupplier(c *gin.Context) {
	var req model.SupplierUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.UpdateSupplier(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	var req model.SupplierDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.DeleteSupplier(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) SelectSuppliers(c *gin.Context) {
	rows, count, err := h.service.SelectSuppliers(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}

// =====================================================
// SUPPLY QUOTES
// =====================================================

func (h *CatalogHandler) InsertQuote(c *gin.Context) {
	var req model.QuoteInsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.InsertQuote(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) UpdateQuote(c *gin.Context) {
	var req model.QuoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.UpdateQuote(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) DeleteQuote(c *gin.Context) {
	var req model.QuoteDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Rejected(c, "Invalid request payload.")
		return
	}

	if err := h.service.DeleteQuote(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CatalogHandler) SelectQuotes(c *gin.Context) {
	rows, count, err := h.service.SelectQuotes(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessList(c, count, rows)
}
