package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// MinimumContribution 最小贡献金额（最小记账单位）
const MinimumContribution int64 = 1

// ContributionLogic 贡献记录业务逻辑
type ContributionLogic struct {
	db    *gorm.DB
	guard *guard
}

// NewContributionLogic 创建贡献记录业务逻辑
func NewContributionLogic(db *gorm.DB, g *guard) *ContributionLogic {
	return &ContributionLogic{db: db, guard: g}
}

// Contribute 向项目贡献资金。要求项目处于 active 状态且未过截止时间，
// 金额不低于最小贡献，且累计金额不得超过目标金额。超出目标的贡献整笔拒绝，
// 不做部分成交或截断。达到目标金额不会自动完成项目，需管理员显式操作。
func (c *ContributionLogic) Contribute(caller string, projectId int64, amount int64) error {
	if err := c.guard.enter(); err != nil {
		return err
	}
	defer c.guard.leave()

	if caller == "" {
		return fmt.Errorf("%w: 贡献者地址不能为空", ErrInvalidArgument)
	}
	if amount < MinimumContribution {
		return fmt.Errorf("%w: 贡献金额不能低于 %d", ErrInvalidArgument, MinimumContribution)
	}

	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := requireNotPaused(tx); err != nil {
			return err
		}

		project, err := findProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.Status != model.ProjectStatusActive {
			return fmt.Errorf("%w: 项目不在进行中，无法接受贡献", ErrIllegalState)
		}
		if !time.Now().Before(project.Deadline) {
			return fmt.Errorf("%w: 项目已过截止时间", ErrIllegalState)
		}
		if project.CurrentAmount+amount > project.GoalAmount {
			return fmt.Errorf("%w: 贡献会使累计金额超过目标金额", ErrInvariantViolation)
		}

		// 创建贡献记录
		record := model.ContributionModel{
			ProjectId: projectId,
			Address:   caller,
			Amount:    amount,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("创建贡献记录失败: %w", err)
		}

		// 更新项目当前金额
		if err := tx.Model(project).
			Update("current_amount", gorm.Expr("current_amount + ?", amount)).Error; err != nil {
			return fmt.Errorf("更新项目金额失败: %w", err)
		}

		// 更新(项目,地址)累计贡献
		if err := upsertContributorTotal(tx, projectId, caller, amount); err != nil {
			return err
		}

		return appendAudit(tx, projectId, model.AuditContributionMade, caller, amount, "")
	})
}

// upsertContributorTotal 累加每个(项目,地址)的贡献总额
func upsertContributorTotal(tx *gorm.DB, projectId int64, address string, amount int64) error {
	var total model.ContributorTotalModel
	err := tx.Where("project_id = ? AND address = ?", projectId, address).First(&total).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		total = model.ContributorTotalModel{
			ProjectId: projectId,
			Address:   address,
			Amount:    amount,
		}
		if err := tx.Create(&total).Error; err != nil {
			return fmt.Errorf("创建累计贡献记录失败: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("查询累计贡献记录失败: %w", err)
	}
	if err := tx.Model(&total).
		Update("amount", gorm.Expr("amount + ?", amount)).Error; err != nil {
		return fmt.Errorf("更新累计贡献记录失败: %w", err)
	}
	return nil
}

// GetProjectContributions 获取项目贡献记录
func (c *ContributionLogic) GetProjectContributions(projectId int64, page, pageSize int) ([]model.ContributionModel, int64, error) {
	if _, err := findProject(c.db, projectId); err != nil {
		return nil, 0, err
	}

	var contributions []model.ContributionModel
	var total int64

	if err := c.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := c.db.Where("project_id = ?", projectId).
		Order("id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&contributions).Error; err != nil {
		return nil, 0, fmt.Errorf("获取贡献记录失败: %w", err)
	}

	return contributions, total, nil
}

// GetContributorTotal 获取某地址在项目中的累计贡献金额，无记录时返回0
func (c *ContributionLogic) GetContributorTotal(projectId int64, address string) (int64, error) {
	var total model.ContributorTotalModel
	err := c.db.Where("project_id = ? AND address = ?", projectId, address).First(&total).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询累计贡献记录失败: %w", err)
	}
	return total.Amount, nil
}
