package model

import (
	"time"
)

// SystemSwitchModel 全局暂停开关，单行记录
type SystemSwitchModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Paused bool `json:"paused" gorm:"default:false"`
}

// TableName 自定义表名
func (SystemSwitchModel) TableName() string {
	return "system_switch"
}
