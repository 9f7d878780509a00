package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-backoffice/internal/domains/catalog/model"
	"bookstore-backoffice/internal/domains/catalog/service"
)

type stubCatalogService struct {
	service.CatalogService

	insertBookErr error
	books         []model.BookRow
}

func (s *stubCatalogService) InsertBook(_ context.Context, _ model.BookInsertRequest) error {
	return s.insertBookErr
}

func (s *stubCatalogService) SelectBooks(_ context.Context, _ service.ListQuery) ([]model.BookRow, int, error) {
	return s.books, len(s.books), nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func performRequest(t *testing.T, h *CatalogHandler, method, path, body string, register func(*gin.Engine)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	register(router)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestInsertBookSuccessEnvelope(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{})

	w, env := performRequest(t, h, http.MethodPost, "/book/insert",
		`{"isbn":"9780134190440","title":"The Go Programming Language","price":"39.99"}`,
		func(r *gin.Engine) { r.POST("/book/insert", h.InsertBook) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "Success.", env.Msg)
}

func TestInsertBookDuplicateEnvelope(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{insertBookErr: model.ErrDuplicateBook})

	w, env := performRequest(t, h, http.MethodPost, "/book/insert",
		`{"isbn":"9780134190440","title":"The Go Programming Language","price":"39.99"}`,
		func(r *gin.Engine) { r.POST("/book/insert", h.InsertBook) })

	// Business rejections ride an HTTP 200 with a 400 envelope code.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 400, env.Code)
	assert.NotEmpty(t, env.Msg)
}

func TestInsertBookMalformedPayload(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{})

	_, env := performRequest(t, h, http.MethodPost, "/book/insert", `{not json`,
		func(r *gin.Engine) { r.POST("/book/insert", h.InsertBook) })

	assert.Equal(t, 400, env.Code)
}

func TestSelectBooksListEnvelope(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{books: []model.BookRow{
		{ISBN: "9780134190440", Title: "The Go Programming Language"},
	}})

	_, env := performRequest(t, h, http.MethodGet, "/book/select", "",
		func(r *gin.Engine) { r.GET("/book/select", h.SelectBooks) })

	assert.Equal(t, 200, env.Code)

	var data struct {
		Count int             `json:"count"`
		List  []model.BookRow `json:"list"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Count)
	require.Len(t, data.List, 1)
	assert.Equal(t, "9780134190440", data.List[0].ISBN)
}
