package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/adilhusain01/CrowdFunding/internal/database"
	"github.com/adilhusain01/CrowdFunding/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	adminAddr   = "0x00000000000000000000000000000000000000a1"
	creatorAddr = "0x00000000000000000000000000000000000000c1"
	aliceAddr   = "0x0000000000000000000000000000000000000a11"
	bobAddr     = "0x0000000000000000000000000000000000000b0b"
)

// recordingTransferor 记录每笔转账的测试转账器
type recordingTransferor struct {
	calls []transferCall
}

type transferCall struct {
	to     string
	amount int64
}

func (t *recordingTransferor) Transfer(to string, amount int64) (string, error) {
	t.calls = append(t.calls, transferCall{to: to, amount: amount})
	return fmt.Sprintf("0xmock%04d", len(t.calls)), nil
}

// failingTransferor 总是失败的测试转账器
type failingTransferor struct{}

func (t *failingTransferor) Transfer(to string, amount int64) (string, error) {
	return "", fmt.Errorf("recipient rejected funds")
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 每个测试用独立的内存库，避免互相干扰
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// setupLedger 建库、初始化管理员并给 creatorAddr 授予项目创建者角色
func setupLedger(t *testing.T) (*gorm.DB, *Ledger, *recordingTransferor) {
	t.Helper()
	db := openTestDB(t)
	transferor := &recordingTransferor{}
	l := New(db, transferor)
	require.NoError(t, l.Access.Bootstrap(adminAddr))
	require.NoError(t, l.Access.GrantRole(adminAddr, creatorAddr, model.RoleProjectCreator))
	return db, l, transferor
}

func createActiveProject(t *testing.T, l *Ledger, goal int64, days int) *model.ProjectModel {
	t.Helper()
	project, err := l.Project.CreateProject(creatorAddr, "去中心化众筹", "测试项目", goal, days)
	require.NoError(t, err)
	return project
}

func TestCreateProjectValidation(t *testing.T) {
	_, l, _ := setupLedger(t)

	_, err := l.Project.CreateProject(creatorAddr, "", "d", 100, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Project.CreateProject(creatorAddr, "t", "d", 0, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Project.CreateProject(creatorAddr, "t", "d", -5, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Project.CreateProject(creatorAddr, "t", "d", 100, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Project.CreateProject(creatorAddr, "t", "d", 100, 91)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// 未持有 project_creator 角色
	_, err = l.Project.CreateProject(aliceAddr, "t", "d", 100, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)

	p1 := createActiveProject(t, l, 100, 10)
	require.Equal(t, model.ProjectStatusActive, p1.Status)
	require.Equal(t, int64(0), p1.CurrentAmount)
	require.Equal(t, creatorAddr, p1.CreatorAddress)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 10), p1.Deadline, time.Minute)

	// ID顺序分配
	p2 := createActiveProject(t, l, 200, 90)
	require.Equal(t, p1.Id+1, p2.Id)
}

func TestContributeGoalCap(t *testing.T) {
	_, l, _ := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)

	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 40))
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 40))

	// 超出目标的贡献整笔拒绝，不截断
	err := l.Contribution.Contribute(aliceAddr, p.Id, 30)
	require.ErrorIs(t, err, ErrInvariantViolation)

	got, err := l.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, int64(80), got.CurrentAmount)

	records, total, err := l.Contribution.GetProjectContributions(p.Id, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, records, 2)

	cum, err := l.Contribution.GetContributorTotal(p.Id, aliceAddr)
	require.NoError(t, err)
	require.Equal(t, int64(80), cum)

	// 刚好补满目标可以接受，且不会自动完成项目
	require.NoError(t, l.Contribution.Contribute(bobAddr, p.Id, 20))
	got, err = l.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, got.GoalAmount, got.CurrentAmount)
	require.Equal(t, model.ProjectStatusActive, got.Status)
}

func TestContributePreconditions(t *testing.T) {
	db, l, _ := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)

	err := l.Contribution.Contribute(aliceAddr, 9999, 10)
	require.ErrorIs(t, err, ErrNotFound)

	err = l.Contribution.Contribute(aliceAddr, p.Id, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = l.Contribution.Contribute("", p.Id, 10)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// 截止时间已过
	require.NoError(t, db.Model(&model.ProjectModel{}).
		Where("id = ?", p.Id).
		Update("deadline", time.Now().Add(-time.Hour)).Error)
	err = l.Contribution.Contribute(aliceAddr, p.Id, 10)
	require.ErrorIs(t, err, ErrIllegalState)

	// 已取消的项目
	p2 := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Project.CancelProject(adminAddr, p2.Id))
	err = l.Contribution.Contribute(aliceAddr, p2.Id, 10)
	require.ErrorIs(t, err, ErrIllegalState)
}

func TestExpenseFlow(t *testing.T) {
	_, l, transferor := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 80))

	// 80 >= 0 + 50
	idx, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "服务器费用", 50, model.ExpenseCategoryInfrastructure, "https://proof.example/1")
	require.NoError(t, err)
	require.Equal(t, int64(0), idx)

	require.NoError(t, l.Expense.ApproveExpense(adminAddr, p.Id, idx))

	require.Len(t, transferor.calls, 1)
	require.Equal(t, creatorAddr, transferor.calls[0].to)
	require.Equal(t, int64(50), transferor.calls[0].amount)

	got, err := l.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, int64(50), got.TotalExpenses)
	require.LessOrEqual(t, got.TotalExpenses, got.CurrentAmount)

	expenses, err := l.Expense.GetProjectExpenses(p.Id)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.True(t, expenses[0].Approved)
	require.NotEmpty(t, expenses[0].TxHash)

	// 重复审批
	err = l.Expense.ApproveExpense(adminAddr, p.Id, idx)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.Len(t, transferor.calls, 1)

	// 80 >= 50 + 40 不成立
	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "推广费用", 40, model.ExpenseCategoryMarketing, "")
	require.ErrorIs(t, err, ErrInvariantViolation)

	// 80 >= 50 + 30 成立
	idx2, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "推广费用", 30, model.ExpenseCategoryMarketing, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), idx2)
}

func TestExpenseSubmitPreconditions(t *testing.T) {
	_, l, _ := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 50))

	// 非项目创建者
	_, err := l.Expense.SubmitExpense(aliceAddr, p.Id, "d", 10, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "", 10, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 0, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 10, "travel", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 60, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrInvariantViolation)

	// 已取消的项目不可提交
	require.NoError(t, l.Project.CancelProject(adminAddr, p.Id))
	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 10, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrIllegalState)
}

func TestApproveExpenseAuthorization(t *testing.T) {
	_, l, transferor := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 80))
	idx, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 50, model.ExpenseCategoryDevelopment, "")
	require.NoError(t, err)

	// 未授权审批，状态不变
	err = l.Expense.ApproveExpense(aliceAddr, p.Id, idx)
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.Empty(t, transferor.calls)

	expenses, err := l.Expense.GetProjectExpenses(p.Id)
	require.NoError(t, err)
	require.False(t, expenses[0].Approved)

	got, err := l.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.TotalExpenses)

	// 不存在的支出
	err = l.Expense.ApproveExpense(adminAddr, p.Id, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStatusTransitionsOneWay(t *testing.T) {
	_, l, _ := setupLedger(t)

	p1 := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Project.CompleteProject(adminAddr, p1.Id))

	err := l.Project.CancelProject(adminAddr, p1.Id)
	require.ErrorIs(t, err, ErrIllegalState)
	err = l.Project.CompleteProject(adminAddr, p1.Id)
	require.ErrorIs(t, err, ErrIllegalState)

	p2 := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Project.CancelProject(adminAddr, p2.Id))
	err = l.Project.CompleteProject(adminAddr, p2.Id)
	require.ErrorIs(t, err, ErrIllegalState)

	got, err := l.Project.GetProject(p2.Id)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusCancelled, got.Status)

	// 仅管理员可操作
	p3 := createActiveProject(t, l, 100, 10)
	err = l.Project.CompleteProject(creatorAddr, p3.Id)
	require.ErrorIs(t, err, ErrPermissionDenied)
	err = l.Project.CancelProject(creatorAddr, p3.Id)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRefundFlow(t *testing.T) {
	_, l, transferor := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 40))
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 40))

	// 项目未取消时不可退款
	err := l.Refund.ClaimRefund(aliceAddr, p.Id)
	require.ErrorIs(t, err, ErrIllegalState)

	require.NoError(t, l.Project.CancelProject(adminAddr, p.Id))

	// 一次性退还全部累计金额
	require.NoError(t, l.Refund.ClaimRefund(aliceAddr, p.Id))
	require.Len(t, transferor.calls, 1)
	require.Equal(t, aliceAddr, transferor.calls[0].to)
	require.Equal(t, int64(80), transferor.calls[0].amount)

	// 重复申领
	err = l.Refund.ClaimRefund(aliceAddr, p.Id)
	require.ErrorIs(t, err, ErrAlreadyClaimed)
	require.Len(t, transferor.calls, 1)

	// 无贡献记录的地址
	err = l.Refund.ClaimRefund(bobAddr, p.Id)
	require.ErrorIs(t, err, ErrNotFound)

	refunds, total, err := l.Refund.GetProjectRefunds(p.Id, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, int64(80), refunds[0].Amount)
	require.NotEmpty(t, refunds[0].TxHash)
}

func TestRefundOnCompletedProject(t *testing.T) {
	_, l, _ := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 40))
	require.NoError(t, l.Project.CompleteProject(adminAddr, p.Id))

	err := l.Refund.ClaimRefund(aliceAddr, p.Id)
	require.ErrorIs(t, err, ErrIllegalState)
}

func TestPauseGating(t *testing.T) {
	_, l, transferor := setupLedger(t)

	// 暂停前先准备好项目、贡献和在途支出
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 80))
	idx, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 50, model.ExpenseCategoryDevelopment, "")
	require.NoError(t, err)
	refundable := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(bobAddr, refundable.Id, 30))
	toCancel := createActiveProject(t, l, 100, 10)
	toComplete := createActiveProject(t, l, 100, 10)

	// 非管理员不可暂停
	require.ErrorIs(t, l.Pause.Pause(aliceAddr), ErrPermissionDenied)

	require.NoError(t, l.Pause.Pause(adminAddr))
	paused, err := l.Pause.IsPaused()
	require.NoError(t, err)
	require.True(t, paused)

	// 暂停期间被拒绝的入口
	_, err = l.Project.CreateProject(creatorAddr, "t", "d", 100, 10)
	require.ErrorIs(t, err, ErrSystemPaused)
	require.ErrorIs(t, l.Contribution.Contribute(aliceAddr, p.Id, 10), ErrSystemPaused)
	_, err = l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 10, model.ExpenseCategoryOther, "")
	require.ErrorIs(t, err, ErrSystemPaused)

	// 暂停期间仍然可用的入口
	require.NoError(t, l.Expense.ApproveExpense(adminAddr, p.Id, idx))
	require.Len(t, transferor.calls, 1)
	require.NoError(t, l.Project.CancelProject(adminAddr, toCancel.Id))
	require.NoError(t, l.Project.CompleteProject(adminAddr, toComplete.Id))
	require.NoError(t, l.Project.CancelProject(adminAddr, refundable.Id))
	require.NoError(t, l.Refund.ClaimRefund(bobAddr, refundable.Id))

	// 恢复后入口重新开放
	require.NoError(t, l.Pause.Unpause(adminAddr))
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 10))
}

func TestTransferFailureRollsBack(t *testing.T) {
	db := openTestDB(t)
	failing := New(db, &failingTransferor{})
	require.NoError(t, failing.Access.Bootstrap(adminAddr))
	require.NoError(t, failing.Access.GrantRole(adminAddr, creatorAddr, model.RoleProjectCreator))

	p, err := failing.Project.CreateProject(creatorAddr, "t", "d", 100, 10)
	require.NoError(t, err)
	require.NoError(t, failing.Contribution.Contribute(aliceAddr, p.Id, 80))
	idx, err := failing.Expense.SubmitExpense(creatorAddr, p.Id, "d", 50, model.ExpenseCategoryDevelopment, "")
	require.NoError(t, err)

	_, eventsBefore, err := failing.Audit.GetProjectEvents(p.Id, 1, 100)
	require.NoError(t, err)

	// 审批放款失败，包括先行写入的状态在内整体回滚
	err = failing.Expense.ApproveExpense(adminAddr, p.Id, idx)
	require.ErrorIs(t, err, ErrTransferFailed)

	got, err := failing.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.TotalExpenses)
	expenses, err := failing.Expense.GetProjectExpenses(p.Id)
	require.NoError(t, err)
	require.False(t, expenses[0].Approved)
	require.Empty(t, expenses[0].TxHash)

	_, eventsAfter, err := failing.Audit.GetProjectEvents(p.Id, 1, 100)
	require.NoError(t, err)
	require.Equal(t, eventsBefore, eventsAfter)

	// 退款同理
	require.NoError(t, failing.Project.CancelProject(adminAddr, p.Id))
	err = failing.Refund.ClaimRefund(aliceAddr, p.Id)
	require.ErrorIs(t, err, ErrTransferFailed)

	// 转账恢复后可重新申领，说明失败未留下退款标记
	working := New(db, &recordingTransferor{})
	require.NoError(t, working.Refund.ClaimRefund(aliceAddr, p.Id))
}

// reentrantTransferor 在转账回调里试图重入受保护入口
type reentrantTransferor struct {
	ledger    *Ledger
	reenter   func(l *Ledger) error
	innerErrs []error
}

func (t *reentrantTransferor) Transfer(to string, amount int64) (string, error) {
	t.innerErrs = append(t.innerErrs, t.reenter(t.ledger))
	return "0xreentrant", nil
}

func TestReentrancyGuard(t *testing.T) {
	db := openTestDB(t)
	transferor := &reentrantTransferor{}
	l := New(db, transferor)
	transferor.ledger = l
	require.NoError(t, l.Access.Bootstrap(adminAddr))
	require.NoError(t, l.Access.GrantRole(adminAddr, creatorAddr, model.RoleProjectCreator))

	p, err := l.Project.CreateProject(creatorAddr, "t", "d", 100, 10)
	require.NoError(t, err)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 80))
	idx, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 50, model.ExpenseCategoryDevelopment, "")
	require.NoError(t, err)

	// 审批放款期间重入 Contribute
	transferor.reenter = func(l *Ledger) error {
		return l.Contribution.Contribute(bobAddr, p.Id, 10)
	}
	require.NoError(t, l.Expense.ApproveExpense(adminAddr, p.Id, idx))
	require.Len(t, transferor.innerErrs, 1)
	require.ErrorIs(t, transferor.innerErrs[0], ErrReentrancyDetected)

	// 重入的贡献未入账
	got, err := l.Project.GetProject(p.Id)
	require.NoError(t, err)
	require.Equal(t, int64(80), got.CurrentAmount)

	// 退款期间重入 ClaimRefund
	require.NoError(t, l.Project.CancelProject(adminAddr, p.Id))
	transferor.reenter = func(l *Ledger) error {
		return l.Refund.ClaimRefund(aliceAddr, p.Id)
	}
	require.NoError(t, l.Refund.ClaimRefund(aliceAddr, p.Id))
	require.Len(t, transferor.innerErrs, 2)
	require.ErrorIs(t, transferor.innerErrs[1], ErrReentrancyDetected)

	// 只退了一次
	_, total, err := l.Refund.GetProjectRefunds(p.Id, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestAuditTrail(t *testing.T) {
	_, l, _ := setupLedger(t)
	p := createActiveProject(t, l, 100, 10)
	require.NoError(t, l.Contribution.Contribute(aliceAddr, p.Id, 80))
	idx, err := l.Expense.SubmitExpense(creatorAddr, p.Id, "d", 50, model.ExpenseCategoryDevelopment, "")
	require.NoError(t, err)
	require.NoError(t, l.Expense.ApproveExpense(adminAddr, p.Id, idx))
	require.NoError(t, l.Project.CancelProject(adminAddr, p.Id))
	require.NoError(t, l.Refund.ClaimRefund(aliceAddr, p.Id))

	events, total, err := l.Audit.GetProjectEvents(p.Id, 1, 100)
	require.NoError(t, err)
	require.Equal(t, int64(7), total)

	types := make([]model.AuditEventType, len(events))
	for i, event := range events {
		types[i] = event.EventType
	}
	require.Equal(t, []model.AuditEventType{
		model.AuditProjectCreated,
		model.AuditContributionMade,
		model.AuditExpenseSubmitted,
		model.AuditExpenseApproved,
		model.AuditFundsReleased,
		model.AuditProjectCancelled,
		model.AuditRefundClaimed,
	}, types)

	// 分发侧：取未处理事件并标记
	unprocessed, err := l.Audit.FetchUnprocessed(100)
	require.NoError(t, err)
	require.Len(t, unprocessed, 7)
	require.NoError(t, l.Audit.MarkProcessed(unprocessed[0].Id))
	unprocessed, err = l.Audit.FetchUnprocessed(100)
	require.NoError(t, err)
	require.Len(t, unprocessed, 6)
}
