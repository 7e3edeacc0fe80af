package handler

import (
	"net/http"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/adilhusain01/CrowdFunding/internal/model"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	ledger *ledger.Ledger
}

func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{ledger: l}
}

// GrantRole 授予角色
func (h *AdminHandler) GrantRole(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Access.GrantRole(caller, req.Address, model.Role(req.Role)); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "角色已授予", nil)
}

// RevokeRole 撤销角色
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Access.RevokeRole(caller, req.Address, model.Role(req.Role)); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "角色已撤销", nil)
}

// Pause 暂停系统
func (h *AdminHandler) Pause(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	if err := h.ledger.Pause.Pause(caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "系统已暂停", nil)
}

// Unpause 恢复系统
func (h *AdminHandler) Unpause(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	if err := h.ledger.Pause.Unpause(caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "系统已恢复", nil)
}

// GetSystemStatus 查询系统暂停状态
func (h *AdminHandler) GetSystemStatus(c *gin.Context) {
	paused, err := h.ledger.Pause.IsPaused()
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"paused": paused})
}
