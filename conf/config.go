package conf

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// 配置加载（数据库、行情API密钥等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MarketConfig 行情数据源配置（Pokémon TCG API v2）
type MarketConfig struct {
	ApiBase             string `yaml:"api_base"`              // 默认 https://api.pokemontcg.io/v2
	ApiKey              string `yaml:"api_key"`               // X-Api-Key，可为空（匿名限流更严格）
	CacheTTLSeconds     int    `yaml:"cache_ttl_seconds"`     // 实时价格缓存 TTL，默认 60
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"` // 单次请求超时，默认 15
}

// AlertConfig 提醒扫描配置
type AlertConfig struct {
	ScanIntervalSeconds int  `yaml:"scan_interval_seconds"` // 后台扫描间隔，默认 300，下限 30
	PreferLive          bool `yaml:"prefer_live"`           // 扫描时是否优先实时价格
	RecentLimit         int  `yaml:"recent_limit"`          // redis 中保留的最近通知条数
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

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type EmailConfig struct {
	Host     string `yaml:"smtp_host"`
	Port     int    `yaml:"smtp_port"`
	Username string `yaml:"smtp_user"`
	Password string `yaml:"smtp_password"`
	Sender   string `yaml:"smtp_sender"`
	PreCheck bool   `yaml:"precheck"` // 创建提醒时是否校验通知邮箱
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Db     `yaml:"database"`
	Market MarketConfig `yaml:"market"`
	Alert  AlertConfig  `yaml:"alert"`
	Log    LogConfig    `yaml:"log"`
	Redis  RedisConfig  `yaml:"redis"`
	Email  EmailConfig  `yaml:"email"`
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
	applyDefaults(&AppConfig)
	return nil
}

// applyDefaults 填充缺省值
func applyDefaults(c *Config) {
	if c.Market.ApiBase == "" {
		c.Market.ApiBase = "https://api.pokemontcg.io/v2"
	}
	if c.Market.CacheTTLSeconds <= 0 {
		c.Market.CacheTTLSeconds = 60
	}
	if c.Market.FetchTimeoutSeconds <= 0 {
		c.Market.FetchTimeoutSeconds = 15
	}
	if c.Alert.ScanIntervalSeconds <= 0 {
		c.Alert.ScanIntervalSeconds = 300
	}
	// 扫描间隔下限 30s，避免把上游打挂
	if c.Alert.ScanIntervalSeconds < 30 {
		c.Alert.ScanIntervalSeconds = 30
	}
	if c.Alert.RecentLimit <= 0 {
		c.Alert.RecentLimit = 50
	}
	if c.MaxPingCount <= 0 {
		c.MaxPingCount = 10
	}
}
