package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/adilhusain01/CrowdFunding/internal/config"
	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EthTransferor 链上原生转账器，出账账户由配置私钥控制
type EthTransferor struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainId    *big.Int
	gasLimit   uint64
}

// NewEthTransferor 创建链上转账器
func NewEthTransferor(cfg config.ChainConfig) (*EthTransferor, error) {
	// 连接链客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	from := crypto.PubkeyToAddress(privateKey.PublicKey)

	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = 21000
	}

	logger.Info("Chain transferor initialized (chain_id: %d, from: %s)", cfg.ChainId, from.Hex())

	return &EthTransferor{
		client:     client,
		privateKey: privateKey,
		from:       from,
		chainId:    big.NewInt(cfg.ChainId),
		gasLimit:   gasLimit,
	}, nil
}

// Transfer 向目标地址发起原生转账，返回交易哈希
func (t *EthTransferor) Transfer(to string, amount int64) (string, error) {
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address: %s", to)
	}

	ctx := context.Background()

	nonce, err := t.client.PendingNonceAt(ctx, t.from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	toAddr := common.HexToAddress(to)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &toAddr,
		Value:    big.NewInt(amount),
		Gas:      t.gasLimit,
		GasPrice: gasPrice,
	})

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(t.chainId), t.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := t.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	txHash := signedTx.Hash().Hex()
	logger.Info("Sent transfer of %d to %s (tx: %s)", amount, to, txHash)
	return txHash, nil
}
