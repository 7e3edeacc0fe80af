package config

import (
	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LedgerConfig 账本配置
type LedgerConfig struct {
	AdminAddress string `mapstructure:"admin_address"` // 初始管理员地址，启动时授予 admin 和 project_creator 两个角色
}

// ChainConfig 链上转账配置
type ChainConfig struct {
	Enabled    bool   `mapstructure:"enabled"`     // 是否启用链上转账，关闭时使用本地记账转账器
	RpcUrl     string `mapstructure:"rpc_url"`     // RPC节点URL
	ChainId    int64  `mapstructure:"chain_id"`    // 链ID
	PrivateKey string `mapstructure:"private_key"` // 出账账户私钥
	GasLimit   uint64 `mapstructure:"gas_limit"`   // 转账Gas上限
}

// TaskConfig 后台任务配置
type TaskConfig struct {
	Interval   int    `mapstructure:"interval"`    // 审计事件分发间隔（秒）
	WebhookURL string `mapstructure:"webhook_url"` // 审计事件推送地址，为空时仅落日志
	Workers    int    `mapstructure:"workers"`     // 分发协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/crowdfunding")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.gas_limit", 21000)
	viper.SetDefault("task.interval", 30)
	viper.SetDefault("task.workers", 4)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
