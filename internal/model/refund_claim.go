package model

import (
	"time"
)

// RefundClaimModel 退款记录，每个(项目,地址)最多一条，防止重复退款
type RefundClaimModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_refund_claim"`
	Address   string `json:"address" gorm:"not null;uniqueIndex:idx_refund_claim"`
	Amount    int64  `json:"amount" gorm:"not null"`
	TxHash    string `json:"tx_hash"`
}

// TableName 自定义表名
func (RefundClaimModel) TableName() string {
	return "refund_claim"
}
