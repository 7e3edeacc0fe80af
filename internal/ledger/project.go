package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"gorm.io/gorm"
)

// 众筹时长限制（天）
const (
	MinDurationDays = 1
	MaxDurationDays = 90
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 创建项目。调用者需持有 project_creator 角色，
// 项目ID由数据库顺序分配，永不复用；截止时间 = 当前时间 + durationDays 天。
func (p *ProjectLogic) CreateProject(caller, title, description string, goalAmount int64, durationDays int) (*model.ProjectModel, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: 项目标题不能为空", ErrInvalidArgument)
	}
	if goalAmount <= 0 {
		return nil, fmt.Errorf("%w: 目标金额必须大于0", ErrInvalidArgument)
	}
	if durationDays < MinDurationDays || durationDays > MaxDurationDays {
		return nil, fmt.Errorf("%w: 众筹时长必须在 %d 到 %d 天之间", ErrInvalidArgument, MinDurationDays, MaxDurationDays)
	}

	var project model.ProjectModel
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := requireNotPaused(tx); err != nil {
			return err
		}
		if err := requireRole(tx, caller, model.RoleProjectCreator); err != nil {
			return err
		}

		project = model.ProjectModel{
			Title:          title,
			Description:    description,
			GoalAmount:     goalAmount,
			CurrentAmount:  0,
			TotalExpenses:  0,
			Deadline:       time.Now().AddDate(0, 0, durationDays),
			Status:         model.ProjectStatusActive,
			CreatorAddress: caller,
		}
		if err := tx.Create(&project).Error; err != nil {
			return fmt.Errorf("创建项目失败: %w", err)
		}

		data, _ := json.Marshal(map[string]interface{}{
			"title":       title,
			"goal_amount": goalAmount,
		})
		return appendAudit(tx, project.Id, model.AuditProjectCreated, caller, goalAmount, string(data))
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CompleteProject 完成项目，仅管理员可调用，只允许从 active 状态转入，不可逆
func (p *ProjectLogic) CompleteProject(caller string, projectId int64) error {
	return p.transition(caller, projectId, model.ProjectStatusCompleted, model.AuditProjectCompleted)
}

// CancelProject 取消项目，仅管理员可调用，只允许从 active 状态转入，不可逆
func (p *ProjectLogic) CancelProject(caller string, projectId int64) error {
	return p.transition(caller, projectId, model.ProjectStatusCancelled, model.AuditProjectCancelled)
}

// transition 状态只单向流转：active → completed 或 active → cancelled，二者互斥且终态
func (p *ProjectLogic) transition(caller string, projectId int64, target model.ProjectStatus, eventType model.AuditEventType) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRole(tx, caller, model.RoleAdmin); err != nil {
			return err
		}

		project, err := findProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.Status != model.ProjectStatusActive {
			return fmt.Errorf("%w: 项目当前状态为 %s", ErrIllegalState, project.Status)
		}

		if err := tx.Model(project).Update("status", target).Error; err != nil {
			return fmt.Errorf("更新项目状态失败: %w", err)
		}
		return appendAudit(tx, projectId, eventType, caller, 0, "")
	})
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(projectId int64) (*model.ProjectModel, error) {
	return findProject(p.db, projectId)
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// GetProjectStats 获取项目统计信息
func (p *ProjectLogic) GetProjectStats(projectId int64) (map[string]interface{}, error) {
	project, err := findProject(p.db, projectId)
	if err != nil {
		return nil, err
	}

	var contributorCount int64
	if err := p.db.Model(&model.ContributorTotalModel{}).
		Where("project_id = ?", projectId).
		Count(&contributorCount).Error; err != nil {
		return nil, fmt.Errorf("获取贡献者数量失败: %w", err)
	}

	var contributionCount int64
	if err := p.db.Model(&model.ContributionModel{}).
		Where("project_id = ?", projectId).
		Count(&contributionCount).Error; err != nil {
		return nil, fmt.Errorf("获取贡献记录数失败: %w", err)
	}

	// 计算完成百分比
	completionPercentage := float64(0)
	if project.GoalAmount > 0 {
		completionPercentage = float64(project.CurrentAmount) / float64(project.GoalAmount) * 100
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if project.Status == model.ProjectStatusActive && time.Now().Before(project.Deadline) {
		remainingTime = time.Until(project.Deadline)
	}

	return map[string]interface{}{
		"project_id":            project.Id,
		"goal_amount":           project.GoalAmount,
		"current_amount":        project.CurrentAmount,
		"total_expenses":        project.TotalExpenses,
		"completion_percentage": completionPercentage,
		"contributor_count":     contributorCount,
		"contribution_count":    contributionCount,
		"remaining_time":        remainingTime.String(),
		"status":                string(project.Status),
	}, nil
}
