// Package ledger 实现众筹账本核心：项目生命周期、贡献记账、支出审批、
// 担保转账与退款。每个变更入口是一个数据库事务，前置条件校验失败或
// 转账失败时整体回滚，不留下部分状态。
package ledger

import (
	"gorm.io/gorm"
)

// Ledger 账本入口集合。Contribute、ApproveExpense、ClaimRefund
// 三个受保护入口共用一把重入锁。
type Ledger struct {
	Access       *AccessLogic
	Pause        *PauseLogic
	Project      *ProjectLogic
	Contribution *ContributionLogic
	Expense      *ExpenseLogic
	Refund       *RefundLogic
	Audit        *AuditLogic
}

// New 创建账本
func New(db *gorm.DB, transferor Transferor) *Ledger {
	g := &guard{}
	return &Ledger{
		Access:       NewAccessLogic(db),
		Pause:        NewPauseLogic(db),
		Project:      NewProjectLogic(db),
		Contribution: NewContributionLogic(db, g),
		Expense:      NewExpenseLogic(db, transferor, g),
		Refund:       NewRefundLogic(db, transferor, g),
		Audit:        NewAuditLogic(db),
	}
}
