package model

import (
	"time"
)

// ProjectModel 众筹项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`

	// 众筹信息
	GoalAmount    int64 `json:"goal_amount" gorm:"not null"`
	CurrentAmount int64 `json:"current_amount" gorm:"default:0"`
	TotalExpenses int64 `json:"total_expenses" gorm:"default:0"`
	ExpenseCount  int64 `json:"expense_count" gorm:"default:0"`

	// 时间信息
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'active'"`

	// 创建者信息
	CreatorAddress string `json:"creator_address" gorm:"not null;index"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
