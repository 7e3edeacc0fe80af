package model

import (
	"time"
)

// AuditEventModel 审计事件，随状态变更在同一事务内追加，供外部观察者消费
type AuditEventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64          `json:"project_id" gorm:"index"`
	EventType AuditEventType `json:"event_type" gorm:"not null"`
	Address   string         `json:"address"`
	Amount    int64          `json:"amount"`
	Data      string         `json:"data" gorm:"type:text"`
	Processed bool           `json:"processed" gorm:"default:false"`
}

// AuditEventType 审计事件类型
type AuditEventType string

const (
	AuditProjectCreated   AuditEventType = "ProjectCreated"
	AuditContributionMade AuditEventType = "ContributionMade"
	AuditExpenseSubmitted AuditEventType = "ExpenseSubmitted"
	AuditExpenseApproved  AuditEventType = "ExpenseApproved"
	AuditFundsReleased    AuditEventType = "FundsReleased"
	AuditProjectCompleted AuditEventType = "ProjectCompleted"
	AuditProjectCancelled AuditEventType = "ProjectCancelled"
	AuditRefundClaimed    AuditEventType = "RefundClaimed"
)

// TableName 自定义表名
func (AuditEventModel) TableName() string {
	return "audit_event"
}
