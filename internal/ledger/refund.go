package ledger

import (
	"errors"
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// RefundLogic 退款业务逻辑
type RefundLogic struct {
	db         *gorm.DB
	transferor Transferor
	guard      *guard
}

// NewRefundLogic 创建退款业务逻辑
func NewRefundLogic(db *gorm.DB, transferor Transferor, g *guard) *RefundLogic {
	return &RefundLogic{db: db, transferor: transferor, guard: g}
}

// ClaimRefund 申领退款。要求项目已取消、调用者有累计贡献且未退款过，
// 一次性退还全部累计金额，不支持部分退款。退款不经过暂停开关。
// 退款标记先于转账写入，转账失败时整个事务回滚。
func (r *RefundLogic) ClaimRefund(caller string, projectId int64) error {
	if err := r.guard.enter(); err != nil {
		return err
	}
	defer r.guard.leave()

	if caller == "" {
		return fmt.Errorf("%w: 贡献者地址不能为空", ErrInvalidArgument)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		project, err := findProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.Status != model.ProjectStatusCancelled {
			return fmt.Errorf("%w: 仅已取消的项目可退款", ErrIllegalState)
		}

		var total model.ContributorTotalModel
		err = tx.Where("project_id = ? AND address = ?", projectId, caller).First(&total).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && total.Amount == 0) {
			return fmt.Errorf("%w: 未找到对应的贡献记录", ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("查询累计贡献记录失败: %w", err)
		}

		var existing model.RefundClaimModel
		err = tx.Where("project_id = ? AND address = ?", projectId, caller).First(&existing).Error
		if err == nil {
			return ErrAlreadyClaimed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询退款记录失败: %w", err)
		}

		// 先写退款标记再转账，重入调用会命中上面的已退款检查
		claim := model.RefundClaimModel{
			ProjectId: projectId,
			Address:   caller,
			Amount:    total.Amount,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return fmt.Errorf("创建退款记录失败: %w", err)
		}

		if err := appendAudit(tx, projectId, model.AuditRefundClaimed, caller, total.Amount, ""); err != nil {
			return err
		}

		txHash, err := r.transferor.Transfer(caller, total.Amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		if err := tx.Model(&claim).Update("tx_hash", txHash).Error; err != nil {
			return fmt.Errorf("记录转账哈希失败: %w", err)
		}
		return nil
	})
}

// GetProjectRefunds 获取项目退款记录
func (r *RefundLogic) GetProjectRefunds(projectId int64, page, pageSize int) ([]model.RefundClaimModel, int64, error) {
	var refunds []model.RefundClaimModel
	var total int64

	if err := r.db.Model(&model.RefundClaimModel{}).
		Where("project_id = ?", projectId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.Where("project_id = ?", projectId).
		Order("id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&refunds).Error; err != nil {
		return nil, 0, fmt.Errorf("获取退款记录失败: %w", err)
	}

	return refunds, total, nil
}
