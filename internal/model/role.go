package model

import (
	"time"
)

// RoleModel 角色授权记录
type RoleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address string `json:"address" gorm:"not null;uniqueIndex:idx_role_address_role"`
	Role    Role   `json:"role" gorm:"not null;uniqueIndex:idx_role_address_role"`
}

// Role 角色
type Role string

const (
	RoleAdmin          Role = "admin"           // 管理员
	RoleProjectCreator Role = "project_creator" // 项目创建者
)

// TableName 自定义表名
func (RoleModel) TableName() string {
	return "role"
}
