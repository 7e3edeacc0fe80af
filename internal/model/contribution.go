package model

import (
	"time"
)

// ContributionModel 贡献记录，按项目追加，不可修改
type ContributionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	Address   string `json:"address" gorm:"not null"`
	Amount    int64  `json:"amount" gorm:"not null"`
}

// TableName 自定义表名
func (ContributionModel) TableName() string {
	return "contribution"
}

// ContributorTotalModel 每个(项目,地址)的累计贡献金额，退款资格以此为准
type ContributorTotalModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_contributor_total"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_contributor_total"`
	Amount    int64  `json:"amount" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (ContributorTotalModel) TableName() string {
	return "contributor_total"
}
