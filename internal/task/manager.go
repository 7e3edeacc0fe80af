package task

import (
	"github.com/adilhusain01/CrowdFunding/internal/config"
	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	ledger    *ledger.Ledger
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(l *ledger.Ledger, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		ledger:    l,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(l *ledger.Ledger, cfg *config.Config) *Manager {
	manager := NewManager(l, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册审计事件分发任务
	m.RegisterAuditDispatchJob()
}

// RegisterAuditDispatchJob 注册审计事件分发任务
func (m *Manager) RegisterAuditDispatchJob() {
	job := NewAuditDispatchJob(m.ledger.Audit, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
