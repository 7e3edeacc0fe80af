package chain

import (
	"strings"

	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/google/uuid"
)

// NoopTransferor 本地记账转账器，链上转账未启用时使用。
// 只生成合成交易哈希，资金流转由账本记录承载。
type NoopTransferor struct{}

// NewNoopTransferor 创建本地记账转账器
func NewNoopTransferor() *NoopTransferor {
	return &NoopTransferor{}
}

// Transfer 记录一笔转账并返回合成交易哈希
func (t *NoopTransferor) Transfer(to string, amount int64) (string, error) {
	txHash := "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
	logger.Info("Recorded local transfer of %d to %s (tx: %s)", amount, to, txHash)
	return txHash, nil
}
