package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/adilhusain01/CrowdFunding/internal/config"
	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/adilhusain01/CrowdFunding/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// 每轮分发的事件批量上限
const dispatchBatchSize = 200

// AuditDispatchJob 审计事件分发任务。账本在事务内追加事件，核心逻辑不回读；
// 本任务是外部观察者一侧：批量取未分发事件，经协程池推送后标记已处理。
type AuditDispatchJob struct {
	audit  *ledger.AuditLogic
	config *config.Config
	client *http.Client
}

// NewAuditDispatchJob 创建审计事件分发任务
func NewAuditDispatchJob(audit *ledger.AuditLogic, cfg *config.Config) *AuditDispatchJob {
	return &AuditDispatchJob{
		audit:  audit,
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetName 获取任务名称
func (j *AuditDispatchJob) GetName() string {
	return "audit_event_dispatcher"
}

// GetSchedule 获取调度配置
func (j *AuditDispatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *AuditDispatchJob) Execute() {
	events, err := j.audit.FetchUnprocessed(dispatchBatchSize)
	if err != nil {
		logger.Error("Failed to fetch unprocessed audit events: %v", err)
		return
	}
	if len(events) == 0 {
		return
	}

	logger.Info("Dispatching %d audit events", len(events))

	workers := j.config.Task.Workers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Error("Failed to create dispatch pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	dispatched := 0
	var mu sync.Mutex

	for _, event := range events {
		event := event
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if err := j.deliver(event); err != nil {
				logger.Error("Failed to deliver audit event %d: %v", event.Id, err)
				return
			}
			if err := j.audit.MarkProcessed(event.Id); err != nil {
				logger.Error("Failed to mark audit event %d: %v", event.Id, err)
				return
			}
			mu.Lock()
			dispatched++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit dispatch task: %v", err)
		}
	}
	wg.Wait()

	logger.Info("Audit dispatch completed, delivered %d/%d events", dispatched, len(events))
}

// deliver 推送单个事件。未配置webhook时仅落日志。
func (j *AuditDispatchJob) deliver(event model.AuditEventModel) error {
	if j.config.Task.WebhookURL == "" {
		logger.Info("Audit event %d: %s project=%d address=%s amount=%d",
			event.Id, event.EventType, event.ProjectId, event.Address, event.Amount)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	resp, err := j.client.Post(j.config.Task.WebhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
