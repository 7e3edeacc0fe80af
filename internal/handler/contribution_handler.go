package handler

import (
	"net/http"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	ledger *ledger.Ledger
}

func NewContributionHandler(l *ledger.Ledger) *ContributionHandler {
	return &ContributionHandler{ledger: l}
}

// Contribute 向项目贡献资金
func (h *ContributionHandler) Contribute(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Contribution.Contribute(caller, id, req.Amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "贡献成功", nil)
}

// GetProjectContributions 获取项目贡献记录
func (h *ContributionHandler) GetProjectContributions(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	contributions, total, err := h.ledger.Contribution.GetProjectContributions(id, page, pageSize)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"contributions": ToContributionResponseList(contributions),
		"pagination":    Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}
