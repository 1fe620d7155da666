package common

import (
	"errors"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	code "github.com/openwms/procflow/pkg/common/code"
)

// Resp is the uniform response envelope of every JSON endpoint.
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// ReplyOk answers 200 with optional payload.
func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success.ErrCode, Msg: code.Success.ErrMsg}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplyErr answers with the business code's HTTP status. Extra messages
// are appended for context.
func ReplyErr(ctx *gin.Context, err error, msgs ...string) {
	c := asCode(err)
	msg := c.ErrMsg
	if len(msgs) > 0 {
		msg = msg + ": " + strings.Join(msgs, "; ")
	}
	ctx.JSON(c.HTTPCode, &Resp{Code: c.ErrCode, Msg: msg})
}

// Reply routes on err: nil replies ok with the optional payload,
// otherwise the error is rendered through the code envelope.
func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	ReplyOk(ctx, data...)
}

func asCode(err error) *code.Code {
	c := &code.Code{}
	if errors.As(err, &c) {
		return c
	}
	if err == nil {
		return code.Success
	}
	return code.UnknownErr.WithErr(err)
}

// PageReq is the shared pagination query.
type PageReq struct {
	Page     int `form:"page,default=1" json:"page" binding:"omitempty,gte=1"`
	PageSize int `form:"page_size,default=20" json:"page_size" binding:"omitempty,gte=1,lte=200"`
}

func (p *PageReq) Offset() int {
	if p.Page <= 0 {
		p.Page = 1
	}
	return (p.Page - 1) * p.Limit()
}

func (p *PageReq) Limit() int {
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	return p.PageSize
}

// PageResp wraps a paged list.
type PageResp[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	List     T     `json:"list"`
}
