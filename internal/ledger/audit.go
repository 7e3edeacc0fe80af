package ledger

import (
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// AuditLogic 审计事件查询。核心逻辑只追加事件，消费侧（分发任务、外部观察者）走这里。
type AuditLogic struct {
	db *gorm.DB
}

// NewAuditLogic 创建审计事件查询逻辑
func NewAuditLogic(db *gorm.DB) *AuditLogic {
	return &AuditLogic{db: db}
}

// GetProjectEvents 获取项目审计事件
func (a *AuditLogic) GetProjectEvents(projectId int64, page, pageSize int) ([]model.AuditEventModel, int64, error) {
	var events []model.AuditEventModel
	var total int64

	if err := a.db.Model(&model.AuditEventModel{}).
		Where("project_id = ?", projectId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取审计事件总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := a.db.Where("project_id = ?", projectId).
		Order("id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取审计事件失败: %w", err)
	}

	return events, total, nil
}

// FetchUnprocessed 取一批未分发的审计事件
func (a *AuditLogic) FetchUnprocessed(limit int) ([]model.AuditEventModel, error) {
	var events []model.AuditEventModel
	if err := a.db.Where("processed = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("获取未分发审计事件失败: %w", err)
	}
	return events, nil
}

// MarkProcessed 标记审计事件已分发
func (a *AuditLogic) MarkProcessed(eventId int64) error {
	if err := a.db.Model(&model.AuditEventModel{}).
		Where("id = ?", eventId).
		Update("processed", true).Error; err != nil {
		return fmt.Errorf("标记审计事件失败: %w", err)
	}
	return nil
}
