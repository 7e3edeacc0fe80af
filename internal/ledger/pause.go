package ledger

import (
	"errors"
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// PauseLogic 全局暂停开关业务逻辑
type PauseLogic struct {
	db *gorm.DB
}

// NewPauseLogic 创建暂停开关业务逻辑
func NewPauseLogic(db *gorm.DB) *PauseLogic {
	return &PauseLogic{db: db}
}

// Pause 暂停系统，仅管理员可调用
func (p *PauseLogic) Pause(caller string) error {
	return p.setPaused(caller, true)
}

// Unpause 恢复系统，仅管理员可调用
func (p *PauseLogic) Unpause(caller string) error {
	return p.setPaused(caller, false)
}

// IsPaused 查询当前暂停状态
func (p *PauseLogic) IsPaused() (bool, error) {
	return isPaused(p.db)
}

func (p *PauseLogic) setPaused(caller string, paused bool) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRole(tx, caller, model.RoleAdmin); err != nil {
			return err
		}

		var sw model.SystemSwitchModel
		if err := tx.First(&sw).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("查询系统开关失败: %w", err)
			}
			sw = model.SystemSwitchModel{Paused: paused}
			if err := tx.Create(&sw).Error; err != nil {
				return fmt.Errorf("创建系统开关失败: %w", err)
			}
			return nil
		}

		if err := tx.Model(&sw).Update("paused", paused).Error; err != nil {
			return fmt.Errorf("更新系统开关失败: %w", err)
		}
		return nil
	})
}
