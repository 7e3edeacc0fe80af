package model

import (
	"time"
)

// ExpenseModel 项目支出记录
type ExpenseModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64           `json:"project_id" gorm:"not null;uniqueIndex:idx_expense_project_idx"`
	Idx         int64           `json:"idx" gorm:"not null;uniqueIndex:idx_expense_project_idx"` // 项目内序号，从0递增
	Description string          `json:"description" gorm:"type:text"`
	Amount      int64           `json:"amount" gorm:"not null"`
	Category    ExpenseCategory `json:"category" gorm:"not null"`
	Approved    bool            `json:"approved" gorm:"default:false"`
	ProofURL    string          `json:"proof_url"`
	TxHash      string          `json:"tx_hash"` // 审批放款后的交易哈希
}

// ExpenseCategory 支出类别
type ExpenseCategory string

const (
	ExpenseCategoryDevelopment    ExpenseCategory = "development"    // 开发
	ExpenseCategoryMarketing      ExpenseCategory = "marketing"      // 市场
	ExpenseCategoryOperations     ExpenseCategory = "operations"     // 运营
	ExpenseCategoryInfrastructure ExpenseCategory = "infrastructure" // 基础设施
	ExpenseCategoryOther          ExpenseCategory = "other"          // 其他
)

// Valid 校验支出类别
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryDevelopment, ExpenseCategoryMarketing,
		ExpenseCategoryOperations, ExpenseCategoryInfrastructure, ExpenseCategoryOther:
		return true
	}
	return false
}

// TableName 自定义表名
func (ExpenseModel) TableName() string {
	return "expense"
}
