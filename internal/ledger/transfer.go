package ledger

import "sync"

// Transferor 对外转账原语，负责把资金转给创建者（支出放款）或贡献者（退款）。
// 实现可能调用外部受控代码（链上转账、回调），因此受保护入口在转账期间持有重入锁，
// 且状态位（approved / refund_claim）先于转账写入，转账失败时整个事务回滚。
type Transferor interface {
	Transfer(to string, amount int64) (txHash string, err error)
}

// guard 重入锁。Contribute、ApproveExpense、ClaimRefund 三个受保护入口共用一把锁：
// 入口 TryLock，嵌套或并发进入立即失败（不阻塞，阻塞会在转账回调重入时死锁），
// 所有路径（包括失败）defer 释放。
type guard struct {
	mu sync.Mutex
}

func (g *guard) enter() error {
	if !g.mu.TryLock() {
		return ErrReentrancyDetected
	}
	return nil
}

func (g *guard) leave() {
	g.mu.Unlock()
}
