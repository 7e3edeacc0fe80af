package handler

import (
	"time"

	"github.com/adilhusain01/CrowdFunding/internal/model"
)

// 请求模型

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	GoalAmount   int64  `json:"goalAmount" binding:"required"`
	DurationDays int    `json:"durationDays" binding:"required"`
}

// ContributeRequest 贡献请求
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// SubmitExpenseRequest 提交支出请求
type SubmitExpenseRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ProofURL    string `json:"proofUrl"`
}

// RoleRequest 角色授予/撤销请求
type RoleRequest struct {
	Address string `json:"address" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// 响应模型

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Creator       string    `json:"creator"`
	GoalAmount    int64     `json:"goalAmount"`
	CurrentAmount int64     `json:"currentAmount"`
	TotalExpenses int64     `json:"totalExpenses"`
	Status        string    `json:"status"`
	Deadline      time.Time `json:"deadline"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ExpenseResponse 支出响应模型
type ExpenseResponse struct {
	Index       int64     `json:"index"`
	ProjectID   int64     `json:"projectId"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Approved    bool      `json:"approved"`
	ProofURL    string    `json:"proofUrl"`
	TxHash      string    `json:"txHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContributionResponse 贡献记录响应模型
type ContributionResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Address   string    `json:"address"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// RefundResponse 退款记录响应模型
type RefundResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Address   string    `json:"address"`
	Amount    int64     `json:"amount"`
	TxHash    string    `json:"txHash"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventResponse 审计事件响应模型
type EventResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	EventType string    `json:"eventType"`
	Address   string    `json:"address"`
	Amount    int64     `json:"amount"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// 转换函数

// ToProjectResponse 将项目模型转换为响应模型
func ToProjectResponse(project *model.ProjectModel) ProjectResponse {
	return ProjectResponse{
		ID:            project.Id,
		Title:         project.Title,
		Description:   project.Description,
		Creator:       project.CreatorAddress,
		GoalAmount:    project.GoalAmount,
		CurrentAmount: project.CurrentAmount,
		TotalExpenses: project.TotalExpenses,
		Status:        string(project.Status),
		Deadline:      project.Deadline,
		CreatedAt:     project.CreatedAt,
	}
}

// ToProjectResponseList 将项目模型列表转换为响应模型列表
func ToProjectResponseList(projects []model.ProjectModel) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectResponse(&project)
	}
	return result
}

// ToExpenseResponse 将支出模型转换为响应模型
func ToExpenseResponse(expense *model.ExpenseModel) ExpenseResponse {
	return ExpenseResponse{
		Index:       expense.Idx,
		ProjectID:   expense.ProjectId,
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    string(expense.Category),
		Approved:    expense.Approved,
		ProofURL:    expense.ProofURL,
		TxHash:      expense.TxHash,
		CreatedAt:   expense.CreatedAt,
	}
}

// ToExpenseResponseList 将支出模型列表转换为响应模型列表
func ToExpenseResponseList(expenses []model.ExpenseModel) []ExpenseResponse {
	result := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		result[i] = ToExpenseResponse(&expense)
	}
	return result
}

// ToContributionResponse 将贡献记录模型转换为响应模型
func ToContributionResponse(record *model.ContributionModel) ContributionResponse {
	return ContributionResponse{
		ID:        record.Id,
		ProjectID: record.ProjectId,
		Address:   record.Address,
		Amount:    record.Amount,
		CreatedAt: record.CreatedAt,
	}
}

// ToContributionResponseList 将贡献记录模型列表转换为响应模型列表
func ToContributionResponseList(records []model.ContributionModel) []ContributionResponse {
	result := make([]ContributionResponse, len(records))
	for i, record := range records {
		result[i] = ToContributionResponse(&record)
	}
	return result
}

// ToRefundResponse 将退款记录模型转换为响应模型
func ToRefundResponse(record *model.RefundClaimModel) RefundResponse {
	return RefundResponse{
		ID:        record.Id,
		ProjectID: record.ProjectId,
		Address:   record.Address,
		Amount:    record.Amount,
		TxHash:    record.TxHash,
		CreatedAt: record.CreatedAt,
	}
}

// ToRefundResponseList 将退款记录模型列表转换为响应模型列表
func ToRefundResponseList(records []model.RefundClaimModel) []RefundResponse {
	result := make([]RefundResponse, len(records))
	for i, record := range records {
		result[i] = ToRefundResponse(&record)
	}
	return result
}

// ToEventResponse 将审计事件模型转换为响应模型
func ToEventResponse(event *model.AuditEventModel) EventResponse {
	return EventResponse{
		ID:        event.Id,
		ProjectID: event.ProjectId,
		EventType: string(event.EventType),
		Address:   event.Address,
		Amount:    event.Amount,
		Data:      event.Data,
		CreatedAt: event.CreatedAt,
	}
}

// ToEventResponseList 将审计事件模型列表转换为响应模型列表
func ToEventResponseList(events []model.AuditEventModel) []EventResponse {
	result := make([]EventResponse, len(events))
	for i, event := range events {
		result[i] = ToEventResponse(&event)
	}
	return result
}
