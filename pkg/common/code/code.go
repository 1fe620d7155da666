package code

import (
	"fmt"
	"net/http"
)

// Code is a business error carrying both the HTTP status to reply with
// and a stable numeric code for the frontend.
type Code struct {
	HTTPCode int    `json:"-"`
	ErrCode  int    `json:"code"`
	ErrMsg   string `json:"msg"`
}

func (c *Code) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", c.ErrCode, c.ErrMsg)
}

// WithMsg returns a copy with a more specific message.
func (c *Code) WithMsg(msg string) *Code {
	return &Code{
		HTTPCode: c.HTTPCode,
		ErrCode:  c.ErrCode,
		ErrMsg:   msg,
	}
}

// WithMsgf formats like fmt.Sprintf.
func (c *Code) WithMsgf(format string, args ...any) *Code {
	return c.WithMsg(fmt.Sprintf(format, args...))
}

// WithErr keeps the code but appends the underlying error text.
func (c *Code) WithErr(err error) *Code {
	if err == nil {
		return c
	}
	return c.WithMsg(c.ErrMsg + ": " + err.Error())
}

func newCode(httpCode int, errCode int, msg string) *Code {
	return &Code{HTTPCode: httpCode, ErrCode: errCode, ErrMsg: msg}
}

var (
	Success = newCode(http.StatusOK, 0, "success")

	// Generic
	ParamErr   = newCode(http.StatusBadRequest, 10001, "param error")
	UnLogin    = newCode(http.StatusUnauthorized, 10002, "not logged in")
	TokenErr   = newCode(http.StatusUnauthorized, 10003, "invalid token")
	UnknownErr = newCode(http.StatusInternalServerError, 10004, "unknown error")

	// Storage
	RecordNotFound = newCode(http.StatusNotFound, 20001, "record not found")
	QueryRecordErr = newCode(http.StatusInternalServerError, 20002, "query record error")
	CreateDataErr  = newCode(http.StatusInternalServerError, 20003, "create data error")
	UpdateDataErr  = newCode(http.StatusInternalServerError, 20004, "update data error")
	DeleteDataErr  = newCode(http.StatusInternalServerError, 20005, "delete data error")
	DataExistErr   = newCode(http.StatusConflict, 20006, "data already exists")

	// Catalog
	CatalogLoadErr    = newCode(http.StatusInternalServerError, 30001, "load framework catalog error")
	CatalogInvalidErr = newCode(http.StatusInternalServerError, 30002, "framework catalog invalid")
	TypeNotFound      = newCode(http.StatusNotFound, 30003, "entity type not found")

	// Flow / session
	FlowNotFound      = newCode(http.StatusNotFound, 40001, "process flow not found")
	SessionNotFound   = newCode(http.StatusNotFound, 40002, "design session not found")
	ConfigValidateErr = newCode(http.StatusBadRequest, 40003, "configuration validation failed")
	ExportErr         = newCode(http.StatusInternalServerError, 40004, "export flow error")

	// Notify
	NotifySendMsgErr              = newCode(http.StatusInternalServerError, 50001, "notify send message error")
	NotifyActionAlreadyRegistered = newCode(http.StatusInternalServerError, 50002, "notify action already registered")
)
