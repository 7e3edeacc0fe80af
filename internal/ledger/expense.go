package ledger

import (
	"errors"
	"fmt"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// ExpenseLogic 支出审批业务逻辑
type ExpenseLogic struct {
	db         *gorm.DB
	transferor Transferor
	guard      *guard
}

// NewExpenseLogic 创建支出审批业务逻辑
func NewExpenseLogic(db *gorm.DB, transferor Transferor, g *guard) *ExpenseLogic {
	return &ExpenseLogic{db: db, transferor: transferor, guard: g}
}

// SubmitExpense 提交支出申请，返回项目内序号。仅项目创建者可提交，已取消的项目不可提交。
// 资金检查只针对已审批总额：current_amount ≥ total_expenses + amount。
// 未审批的在途支出不占用资金，多笔在途支出可能合计超支，由审批方把关。
func (e *ExpenseLogic) SubmitExpense(caller string, projectId int64, description string, amount int64, category model.ExpenseCategory, proofUrl string) (int64, error) {
	if description == "" {
		return 0, fmt.Errorf("%w: 支出说明不能为空", ErrInvalidArgument)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: 支出金额必须大于0", ErrInvalidArgument)
	}
	if !category.Valid() {
		return 0, fmt.Errorf("%w: 未知支出类别 %s", ErrInvalidArgument, category)
	}

	var idx int64
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := requireNotPaused(tx); err != nil {
			return err
		}

		project, err := findProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.CreatorAddress != caller {
			return fmt.Errorf("%w: 仅项目创建者可提交支出", ErrPermissionDenied)
		}
		if project.Status == model.ProjectStatusCancelled {
			return fmt.Errorf("%w: 已取消的项目不可提交支出", ErrIllegalState)
		}
		if project.CurrentAmount < project.TotalExpenses+amount {
			return fmt.Errorf("%w: 项目可用资金不足", ErrInvariantViolation)
		}

		idx = project.ExpenseCount
		expense := model.ExpenseModel{
			ProjectId:   projectId,
			Idx:         idx,
			Description: description,
			Amount:      amount,
			Category:    category,
			Approved:    false,
			ProofURL:    proofUrl,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return fmt.Errorf("创建支出记录失败: %w", err)
		}

		if err := tx.Model(project).
			Update("expense_count", gorm.Expr("expense_count + 1")).Error; err != nil {
			return fmt.Errorf("更新支出序号失败: %w", err)
		}

		return appendAudit(tx, projectId, model.AuditExpenseSubmitted, caller, amount, "")
	})
	if err != nil {
		return 0, err
	}
	return idx, nil
}

// ApproveExpense 审批支出并放款给项目创建者，仅管理员可调用，每笔支出只能审批一次。
// 审批不经过暂停开关。approved 标记和 total_expenses 先于转账写入，
// 转账失败时整个事务回滚，包括先行写入的状态。
func (e *ExpenseLogic) ApproveExpense(caller string, projectId int64, idx int64) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRole(tx, caller, model.RoleAdmin); err != nil {
			return err
		}

		project, err := findProject(tx, projectId)
		if err != nil {
			return err
		}

		var expense model.ExpenseModel
		if err := tx.Where("project_id = ? AND idx = ?", projectId, idx).
			First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 支出 %d/%d 不存在", ErrNotFound, projectId, idx)
			}
			return fmt.Errorf("查询支出记录失败: %w", err)
		}
		if expense.Approved {
			return fmt.Errorf("%w: 该支出已审批", ErrInvariantViolation)
		}

		// 先写状态再转账，重入调用会看到已更新的状态并被自身前置检查拒绝
		if err := tx.Model(&expense).Update("approved", true).Error; err != nil {
			return fmt.Errorf("更新支出状态失败: %w", err)
		}
		if err := tx.Model(project).
			Update("total_expenses", gorm.Expr("total_expenses + ?", expense.Amount)).Error; err != nil {
			return fmt.Errorf("更新已审批总额失败: %w", err)
		}

		if err := appendAudit(tx, projectId, model.AuditExpenseApproved, caller, expense.Amount, ""); err != nil {
			return err
		}
		if err := appendAudit(tx, projectId, model.AuditFundsReleased, project.CreatorAddress, expense.Amount, ""); err != nil {
			return err
		}

		txHash, err := e.transferor.Transfer(project.CreatorAddress, expense.Amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		if err := tx.Model(&expense).Update("tx_hash", txHash).Error; err != nil {
			return fmt.Errorf("记录转账哈希失败: %w", err)
		}
		return nil
	})
}

// GetProjectExpenses 获取项目支出记录，按项目内序号排序
func (e *ExpenseLogic) GetProjectExpenses(projectId int64) ([]model.ExpenseModel, error) {
	if _, err := findProject(e.db, projectId); err != nil {
		return nil, err
	}

	var expenses []model.ExpenseModel
	if err := e.db.Where("project_id = ?", projectId).
		Order("idx ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("获取支出记录失败: %w", err)
	}
	return expenses, nil
}
