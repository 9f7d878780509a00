// Package response renders the `{code, msg, data}` envelope the back-office
// clients consume. Business-rule rejections answer with code 400 and a
// human-readable message; infrastructure failures answer with code 500 and a
// generic message so callers know a retry is reasonable.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// ListData is the payload shape of every select endpoint.
type ListData struct {
	Count int         `json:"count"`
	List  interface{} `json:"list"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code: 200,
		Msg:  "Success.",
		Data: data,
	})
}

func SuccessList(c *gin.Context, count int, list interface{}) {
	Success(c, ListData{Count: count, List: list})
}

// Rejected reports a business-rule rejection. The client can correct the
// request; nothing should retry it automatically.
func Rejected(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{
		Code: 400,
		Msg:  msg,
	})
}

// NotFound reports a missing entity.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{
		Code: 404,
		Msg:  msg,
	})
}

// Unauthorized aborts the request at the auth boundary.
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Code: 401,
		Msg:  msg,
	})
}

// Failure reports an infrastructure failure. The detail stays in the server
// log; the caller only learns that a retry may succeed.
func Failure(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Code: 500,
		Msg:  "Internal error. Please retry.",
	})
}
