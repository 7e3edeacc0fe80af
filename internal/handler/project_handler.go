package handler

import (
	"net/http"
	"strconv"

	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	ledger *ledger.Ledger
}

func NewProjectHandler(l *ledger.Ledger) *ProjectHandler {
	return &ProjectHandler{ledger: l}
}

// parseProjectId 解析路径中的项目ID
func parseProjectId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.ledger.Project.CreateProject(caller, req.Title, req.Description, req.GoalAmount, req.DurationDays)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", ToProjectResponse(project))
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	page, pageSize := parsePagination(c)

	projects, total, err := h.ledger.Project.GetProjects(status, page, pageSize)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects":   ToProjectResponseList(projects),
		"pagination": Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	project, err := h.ledger.Project.GetProject(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", ToProjectResponse(project))
}

// CompleteProject 完成项目
func (h *ProjectHandler) CompleteProject(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.ledger.Project.CompleteProject(caller, id); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目已完成", nil)
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	if err := h.ledger.Project.CancelProject(caller, id); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目已取消", nil)
}

// GetProjectStats 获取项目统计信息
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}

	stats, err := h.ledger.Project.GetProjectStats(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}

// GetProjectEvents 获取项目审计事件
func (h *ProjectHandler) GetProjectEvents(c *gin.Context) {
	id, ok := parseProjectId(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	events, total, err := h.ledger.Audit.GetProjectEvents(id, page, pageSize)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"events":     ToEventResponseList(events),
		"pagination": Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}
