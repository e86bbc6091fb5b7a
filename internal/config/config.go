package config

import (
	"fmt"
	"os"
	"time"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig 向量化服务配置
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	Dimensions int    `yaml:"dimensions"`
}

// RedisConfig Redis配置，仅用于向量缓存，可整体关闭
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"`
	// APIKey 非空时启用X-API-Key鉴权
	APIKey string `yaml:"api_key"`
	// ShutdownTimeout 优雅退出等待时长，如 "5s"
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// TracingConfig 链路追踪配置，OTLP gRPC上报
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	SampleRate  float64 `yaml:"sample_rate"`
}

// TaxonomyConfig 技能词典文件路径
type TaxonomyConfig struct {
	SkillsFile       string `yaml:"skills_file"`
	RegionSkillsFile string `yaml:"region_skills_file"`
}

// MatcherConfig 匹配器默认参数
// 权重不强制要求和为1，由调用方负责
type MatcherConfig struct {
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	TopMatches     int     `yaml:"top_matches"`
	KeywordTopK    int     `yaml:"keyword_top_k"`
}

// Config 应用程序配置
type Config struct {
	Aliyun struct {
		APIKey    string          `yaml:"api_key"`
		Embedding EmbeddingConfig `yaml:"embedding"`
	} `yaml:"aliyun"`

	Server ServerConfig `yaml:"server"`

	Redis RedisConfig `yaml:"redis"`

	Tracing TracingConfig `yaml:"tracing"`

	Taxonomy TaxonomyConfig `yaml:"taxonomy"`

	Matcher MatcherConfig `yaml:"matcher"`

	Logger logger.Config `yaml:"logger"`
}

// LoadConfig 从YAML文件加载配置并填充默认值
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 '%s' 失败: %w", filePath, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
	}

	applyDefaults(&config)

	// 环境变量优先于配置文件
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}

	return &config, nil
}

// applyDefaults 为未设置的字段填充默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.ShutdownTimeout == "" {
		config.Server.ShutdownTimeout = "5s"
	}

	if config.Tracing.Endpoint == "" {
		config.Tracing.Endpoint = "localhost:4317"
	}
	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = "resume-match-go"
	}
	if config.Tracing.SampleRate == 0 {
		config.Tracing.SampleRate = 1.0
	}

	if config.Aliyun.Embedding.Model == "" {
		config.Aliyun.Embedding.Model = "text-embedding-v3"
	}
	if config.Aliyun.Embedding.Dimensions == 0 {
		config.Aliyun.Embedding.Dimensions = 1024
	}
	if config.Aliyun.Embedding.BaseURL == "" {
		config.Aliyun.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	if config.Redis.Address == "" {
		config.Redis.Address = "localhost:6379"
	}
	if config.Redis.PoolSize == 0 {
		config.Redis.PoolSize = 10
	}
	if config.Redis.MinIdleConns == 0 {
		config.Redis.MinIdleConns = 2
	}
	if config.Redis.DialTimeoutSeconds == 0 {
		config.Redis.DialTimeoutSeconds = 5
	}
	if config.Redis.ReadTimeoutSeconds == 0 {
		config.Redis.ReadTimeoutSeconds = 3
	}
	if config.Redis.WriteTimeoutSeconds == 0 {
		config.Redis.WriteTimeoutSeconds = 3
	}

	if config.Taxonomy.SkillsFile == "" {
		config.Taxonomy.SkillsFile = "data/skills.json"
	}
	if config.Taxonomy.RegionSkillsFile == "" {
		config.Taxonomy.RegionSkillsFile = "data/skills_dubai.json"
	}

	// 两个权重都为零视为未配置
	if config.Matcher.SemanticWeight == 0 && config.Matcher.KeywordWeight == 0 {
		config.Matcher.SemanticWeight = constants.DefaultSemanticWeight
		config.Matcher.KeywordWeight = constants.DefaultKeywordWeight
	}
	if config.Matcher.TopMatches == 0 {
		config.Matcher.TopMatches = constants.DefaultTopMatches
	}
	if config.Matcher.KeywordTopK == 0 {
		config.Matcher.KeywordTopK = constants.DefaultKeywordTopK
	}

	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "pretty"
	}
	if config.Logger.TimeFormat == "" {
		config.Logger.TimeFormat = "2006-01-02 15:04:05"
	}
}

// CreateDefaultConfig 创建一个默认配置，用于测试环境
func CreateDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	} else {
		config.Aliyun.APIKey = "test_api_key"
	}

	return config
}

// GetDuration 解析配置中的时长字符串，失败时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
