package ledger

import (
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// AccessLogic 角色授权业务逻辑
type AccessLogic struct {
	db *gorm.DB
}

// NewAccessLogic 创建角色授权业务逻辑
func NewAccessLogic(db *gorm.DB) *AccessLogic {
	return &AccessLogic{db: db}
}

// Bootstrap 给初始管理员地址授予 admin 和 project_creator 两个角色，可重复执行
func (a *AccessLogic) Bootstrap(address string) error {
	if address == "" {
		return fmt.Errorf("%w: 初始管理员地址不能为空", ErrInvalidArgument)
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		for _, role := range []model.Role{model.RoleAdmin, model.RoleProjectCreator} {
			record := model.RoleModel{Address: address, Role: role}
			if err := tx.Where("address = ? AND role = ?", address, role).
				FirstOrCreate(&record).Error; err != nil {
				return fmt.Errorf("初始化角色失败: %w", err)
			}
		}
		return nil
	})
}

// GrantRole 授予角色，仅管理员可调用，重复授予视为成功
func (a *AccessLogic) GrantRole(caller, target string, role model.Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("%w: 目标地址不能为空", ErrInvalidArgument)
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRole(tx, caller, model.RoleAdmin); err != nil {
			return err
		}
		record := model.RoleModel{Address: target, Role: role}
		if err := tx.Where("address = ? AND role = ?", target, role).
			FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("授予角色失败: %w", err)
		}
		return nil
	})
}

// RevokeRole 撤销角色，仅管理员可调用
func (a *AccessLogic) RevokeRole(caller, target string, role model.Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRole(tx, caller, model.RoleAdmin); err != nil {
			return err
		}
		if err := tx.Where("address = ? AND role = ?", target, role).
			Delete(&model.RoleModel{}).Error; err != nil {
			return fmt.Errorf("撤销角色失败: %w", err)
		}
		return nil
	})
}

// HasRole 查询地址是否持有角色
func (a *AccessLogic) HasRole(address string, role model.Role) (bool, error) {
	return hasRole(a.db, address, role)
}

// validateRole 校验角色值
func validateRole(role model.Role) error {
	switch role {
	case model.RoleAdmin, model.RoleProjectCreator:
		return nil
	}
	return fmt.Errorf("%w: 未知角色 %s", ErrInvalidArgument, role)
}
