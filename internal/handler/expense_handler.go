package handler

import (
	"net/http"
	"strconv"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/adilhusain01/CrowdFunding/internal/model"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	ledger *ledger.Ledger
}

func NewExpenseHandler(l *ledger.Ledger) *ExpenseHandler {
	return &ExpenseHandler{ledger: l}
}

// SubmitExpense 提交支出申请
func (h *ExpenseHandler) SubmitExpense(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	idx, err := h.ledger.Expense.SubmitExpense(caller, id, req.Description, req.Amount, model.ExpenseCategory(req.Category), req.ProofURL)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "支出已提交", gin.H{"index": idx})
}

// ApproveExpense 审批支出并放款
func (h *ExpenseHandler) ApproveExpense(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	idx, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的支出序号")
		return
	}

	if err := h.ledger.Expense.ApproveExpense(caller, id, idx); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "支出已审批并放款", nil)
}

// GetProjectExpenses 获取项目支出记录
func (h *ExpenseHandler) GetProjectExpenses(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	expenses, err := h.ledger.Expense.GetProjectExpenses(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"expenses": ToExpenseResponseList(expenses)})
}
