package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 运行环境: development / production
	Environment string `yaml:"environment"`

	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// AI 后端配置 (OpenAI兼容接口)
	AI AIConfig `yaml:"ai"`

	// 搜索配置
	Search SearchConfig `yaml:"search"`

	// 文本处理配置
	Processing ProcessingConfig `yaml:"processing"`

	// MinIO配置 (可选的简历对象存储来源)
	MinIO MinIOConfig `yaml:"minio"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AIConfig holds the OpenAI-compatible API settings shared by the embedding
// backend and the summary generator. Backend selects which representation
// implementation the process runs with; exactly one per service instance.
type AIConfig struct {
	Backend        string `yaml:"backend"` // "dense" 或 "feature"
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
	Dimensions     int    `yaml:"dimensions"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 模型调用超时(秒)
	MaxRetries     int    `yaml:"max_retries"`     // 含首次调用的最大尝试次数
}

// Timeout returns the per-call timeout for model API requests.
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SearchConfig 搜索配置
type SearchConfig struct {
	// SimilarityThreshold is the single source of truth for the ranking
	// cutoff; candidates scoring below it are dropped.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxResults          int     `yaml:"max_results"`
}

// ProcessingConfig 文本处理配置
type ProcessingConfig struct {
	MaxTextLength          int `yaml:"max_text_length"`          // 响应中保留的最大文本长度
	ChunkSize              int `yaml:"chunk_size"`               // 送入模型的文本上限
	DownloadTimeoutSeconds int `yaml:"download_timeout_seconds"` // 简历下载超时(秒)
}

// DownloadTimeout returns the bounded timeout for document fetches.
func (p ProcessingConfig) DownloadTimeout() time.Duration {
	if p.DownloadTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.DownloadTimeoutSeconds) * time.Second
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	BucketName      string `yaml:"bucketName"`
}

// Enabled reports whether an object-storage document source is configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置，再以环境变量覆盖
func LoadConfig(configPath string) (*Config, error) {
	config := createDefaultConfig()

	if configPath == "" {
		for _, path := range []string{"config.yaml", "./config.yaml", "../config.yaml"} {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
			if !inTestEnvironment() {
				return nil, fmt.Errorf("配置文件不存在: %s", configPath)
			}
			// 测试环境中允许缺省配置
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		config.Environment = v
	}
	if v := os.Getenv("HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("AI_BACKEND"); v != "" {
		config.AI.Backend = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		config.AI.BaseURL = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		config.AI.APIKey = v
	}
	// GROQ_API_KEY is what the surrounding ATS deployment exports.
	if v := os.Getenv("GROQ_API_KEY"); v != "" && config.AI.APIKey == "" {
		config.AI.APIKey = v
	}
	if v := os.Getenv("AI_CHAT_MODEL"); v != "" {
		config.AI.ChatModel = v
	}
	if v := os.Getenv("AI_EMBEDDING_MODEL"); v != "" {
		config.AI.EmbeddingModel = v
	}
	if v := os.Getenv("SIMILARITY_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			config.Search.SimilarityThreshold = threshold
		}
	}
	if v := os.Getenv("MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Search.MaxResults = n
		}
	}
	if v := os.Getenv("MAX_TEXT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Processing.MaxTextLength = n
		}
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Processing.ChunkSize = n
		}
	}
}

// inTestEnvironment 检测是否在go test下运行
func inTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// createDefaultConfig 创建默认配置
func createDefaultConfig() *Config {
	config := &Config{}

	config.Environment = "development"
	config.Server.Host = "0.0.0.0"
	config.Server.Port = 8000

	config.AI.Backend = "feature"
	config.AI.BaseURL = "https://api.groq.com/openai/v1"
	config.AI.ChatModel = "llama-3.3-70b-versatile"
	config.AI.EmbeddingModel = "text-embedding-3-small"
	config.AI.Dimensions = 1536
	config.AI.TimeoutSeconds = 30
	config.AI.MaxRetries = 2

	config.Search.SimilarityThreshold = 0.3
	config.Search.MaxResults = 20

	config.Processing.MaxTextLength = 10000
	config.Processing.ChunkSize = 5000
	config.Processing.DownloadTimeoutSeconds = 30

	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	return config
}

// Validate 检查配置的关键约束
func (c *Config) Validate() error {
	switch c.AI.Backend {
	case "dense", "feature":
	default:
		return fmt.Errorf("未知的AI后端类型: %q (支持 dense / feature)", c.AI.Backend)
	}
	if c.Search.SimilarityThreshold < 0 || c.Search.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold 必须在 [0,1] 之间: %v", c.Search.SimilarityThreshold)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("max_results 必须大于0: %d", c.Search.MaxResults)
	}
	return nil
}
