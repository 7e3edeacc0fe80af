package ledger

import (
	"errors"
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// hasRole 查询地址是否持有角色
func hasRole(tx *gorm.DB, address string, role model.Role) (bool, error) {
	var count int64
	if err := tx.Model(&model.RoleModel{}).
		Where("address = ? AND role = ?", address, role).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询角色失败: %w", err)
	}
	return count > 0, nil
}

// requireRole 校验调用者角色，未授权时返回 ErrPermissionDenied
func requireRole(tx *gorm.DB, address string, role model.Role) error {
	ok, err := hasRole(tx, address, role)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: 需要 %s 角色", ErrPermissionDenied, role)
	}
	return nil
}

// isPaused 查询全局暂停开关
func isPaused(tx *gorm.DB) (bool, error) {
	var sw model.SystemSwitchModel
	if err := tx.First(&sw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("查询系统开关失败: %w", err)
	}
	return sw.Paused, nil
}

// requireNotPaused 暂停期间 CreateProject、Contribute、SubmitExpense 被拒绝。
// 审批、退款、完成、取消不经过此检查。
func requireNotPaused(tx *gorm.DB) error {
	paused, err := isPaused(tx)
	if err != nil {
		return err
	}
	if paused {
		return ErrSystemPaused
	}
	return nil
}

// findProject 按ID加载项目，不存在时返回 ErrNotFound
func findProject(tx *gorm.DB, projectId int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := tx.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 项目 %d 不存在", ErrNotFound, projectId)
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return &project, nil
}

// appendAudit 在当前事务内追加审计事件，供外部观察者消费，核心逻辑不回读
func appendAudit(tx *gorm.DB, projectId int64, eventType model.AuditEventType, address string, amount int64, data string) error {
	event := model.AuditEventModel{
		ProjectId: projectId,
		EventType: eventType,
		Address:   address,
		Amount:    amount,
		Data:      data,
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("追加审计事件失败: %w", err)
	}
	return nil
}
