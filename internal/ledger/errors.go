package ledger

import "errors"

// 账本错误种类，处理层通过 errors.Is 映射为HTTP状态码。
// 所有入口先校验前置条件再改状态，失败时整个事务回滚，不留下部分变更。
var (
	ErrPermissionDenied   = errors.New("权限不足")
	ErrSystemPaused       = errors.New("系统已暂停")
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidArgument    = errors.New("参数无效")
	ErrInvariantViolation = errors.New("违反账本约束")
	ErrIllegalState       = errors.New("项目状态不允许该操作")
	ErrAlreadyClaimed     = errors.New("该地址已经退款")
	ErrReentrancyDetected = errors.New("检测到重入调用")
	ErrTransferFailed     = errors.New("转账失败")
)
