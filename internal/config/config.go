package config

import (
	"os"
	"sync"

	commonConfig "github.com/Ravenry/kacamerah/common/config"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath 配置文件路径的环境变量
const EnvConfigPath = "KACAMERAH_CONFIG"

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "config/config.yml"

// 存储类型
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
)

// Config 应用配置
type Config struct {
	commonConfig.Config `yaml:",inline"`
	Table               TableConfig `yaml:"table"`
	Views               ViewsConfig `yaml:"views"`
	Documents           StoreConfig `yaml:"documents"`
}

// TableConfig 表格分页配置
type TableConfig struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
}

// ViewsConfig 保存视图配置
type ViewsConfig struct {
	Store string `yaml:"store"` // memory, database
}

// StoreConfig 文档存储配置
type StoreConfig struct {
	Store string `yaml:"store"` // memory, database
}

var (
	globalConfig *Config
	once         sync.Once
)

// Path 解析配置文件路径，命令行参数优先，其次为环境变量
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	once.Do(func() {
		globalConfig = &cfg
		// 同步到公共配置
		commonConfig.SetConfig(&cfg.Config)
	})

	return &cfg, nil
}

// Default 不依赖外部服务的默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "kacamerah"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Database == "" {
		c.Database.Database = "kacamerah.db"
	}
	if c.Table.DefaultPerPage <= 0 {
		c.Table.DefaultPerPage = 10
	}
	if c.Table.MaxPerPage <= 0 {
		c.Table.MaxPerPage = 100
	}
	if c.Views.Store == "" {
		c.Views.Store = StoreMemory
	}
	if c.Documents.Store == "" {
		c.Documents.Store = StoreMemory
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return globalConfig
}
