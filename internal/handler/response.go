package handler

import (
	"errors"
	"net/http"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerErrorResponse 按账本错误种类映射HTTP状态码
func LedgerErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrSystemPaused):
		return http.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInvariantViolation),
		errors.Is(err, ledger.ErrIllegalState),
		errors.Is(err, ledger.ErrAlreadyClaimed),
		errors.Is(err, ledger.ErrReentrancyDetected):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CallerHeader 调用者身份头。密钥管理和签名校验不在本服务范围内，
// 网关层负责认证后注入该头。
const CallerHeader = "X-Caller-Address"

// callerAddress 从请求头取调用者地址
func callerAddress(c *gin.Context) (string, bool) {
	caller := c.GetHeader(CallerHeader)
	if caller == "" {
		ErrorResponse(c, http.StatusUnauthorized, "缺少调用者地址")
		return "", false
	}
	return caller, true
}
