package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置加载（API密钥等）

type WebhookConfig struct {
	// 共享密钥，配置后请求头必须携带 X-Webhook-Token
	Token string `yaml:"token"`
}

type Bybit struct {
	ApiKey    string `yaml:"apiKey"`
	SecretKey string `yaml:"secretKey"`
	// 是否使用测试网 api-testnet.bybit.com
	Testnet bool `yaml:"testnet"`
	// TradingView 的 BTCUSD 自动转为 BTCUSDT 永续合约
	UsePerp bool `yaml:"usePerp"`
}

type RiskConfig struct {
	// 默认风险比例，单位百分比，例如 1.0 表示每单最多亏损净值的1%
	DefaultPercent float64 `yaml:"defaultPercent"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook WebhookConfig `yaml:"webhook"`
	Bybit   `yaml:"bybit"`
	Risk    RiskConfig `yaml:"risk"`
	Log     LogConfig  `yaml:"log"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	if AppConfig.Risk.DefaultPercent <= 0 {
		AppConfig.Risk.DefaultPercent = 1.0
	}
	return nil
}
