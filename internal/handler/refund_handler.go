package handler

import (
	"net/http"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	ledger *ledger.Ledger
}

func NewRefundHandler(l *ledger.Ledger) *RefundHandler {
	return &RefundHandler{ledger: l}
}

// ClaimRefund 申领退款
func (h *RefundHandler) ClaimRefund(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.ledger.Refund.ClaimRefund(caller, id); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}

// GetProjectRefunds 获取项目退款记录
func (h *RefundHandler) GetProjectRefunds(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	refunds, total, err := h.ledger.Refund.GetProjectRefunds(id, page, pageSize)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"refunds":    ToRefundResponseList(refunds),
		"pagination": Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}
