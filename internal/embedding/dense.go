package embedding

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"talentvault-ai-go/internal/types"
)

// embeddingClient go-openai客户端中本后端用到的部分，便于测试替换
type embeddingClient interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// DenseBackend 通过OpenAI兼容的embeddings端点生成稠密向量表示
type DenseBackend struct {
	client     embeddingClient
	model      string
	dimensions int
	maxRetries int
	timeout    time.Duration
	logger     *log.Logger
}

// DenseConfig 稠密后端配置
type DenseConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	MaxRetries int
	Timeout    time.Duration
}

// NewDenseBackend 创建稠密向量后端。APIKey为空时返回错误。
func NewDenseBackend(cfg DenseConfig, logger *log.Logger) (*DenseBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("dense backend requires an API key")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("dense backend requires an embedding model name")
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[DenseBackend] ", log.LstdFlags)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &DenseBackend{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		maxRetries: cfg.MaxRetries,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Represent 为候选人文本生成稠密向量表示
func (d *DenseBackend) Represent(ctx context.Context, text string) (*types.Representation, error) {
	return d.embed(ctx, text)
}

// RepresentQuery 为搜索查询生成稠密向量表示
func (d *DenseBackend) RepresentQuery(ctx context.Context, query string) (*types.Representation, error) {
	return d.embed(ctx, query)
}

func (d *DenseBackend) embed(ctx context.Context, text string) (*types.Representation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	var resp openai.EmbeddingResponse
	err := doWithRetry(ctx, d.maxRetries, func(ctx context.Context) error {
		var callErr error
		resp, callErr = d.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(d.model),
		})
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrExternalService)
	}

	raw := resp.Data[0].Embedding
	vector := make([]float64, len(raw))
	for i, v := range raw {
		vector[i] = float64(v)
	}

	d.logger.Printf("embedded %d chars into %d dims in %.2fs", len(text), len(vector), time.Since(start).Seconds())

	return &types.Representation{
		Kind:       types.RepresentationDense,
		Vector:     vector,
		Text:       text,
		Model:      d.model,
		Dimensions: len(vector),
	}, nil
}

// Kind 返回稠密表示类型
func (d *DenseBackend) Kind() types.RepresentationKind { return types.RepresentationDense }

// Model 返回embedding模型名
func (d *DenseBackend) Model() string { return d.model }

// Loaded 客户端已构造即视为可用
func (d *DenseBackend) Loaded() bool { return d.client != nil }
