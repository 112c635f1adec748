package embedding

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"talentvault-ai-go/internal/types"
)

const (
	resumeFeaturePrompt = "Extract key skills, technologies, and experience from the resume. Return ONLY a JSON array of strings."
	queryFeaturePrompt  = "Extract key requirements from the search query. Return ONLY a JSON array of strings."
)

// chatClient go-openai客户端中特征后端用到的部分
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// FeatureBackend extracts keyword features through a chat model. When the
// model is unreachable or returns something unparseable, it degrades to
// plain whitespace tokenization so search keeps working without the LLM.
type FeatureBackend struct {
	client     chatClient
	model      string
	maxRetries int
	timeout    time.Duration
	logger     *log.Logger
}

// FeatureConfig 特征后端配置
type FeatureConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// NewFeatureBackend 创建特征后端。APIKey为空时不配置客户端，直接走分词降级。
func NewFeatureBackend(cfg FeatureConfig, logger *log.Logger) *FeatureBackend {
	if logger == nil {
		logger = log.New(os.Stderr, "[FeatureBackend] ", log.LstdFlags)
	}

	b := &FeatureBackend{
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
	if b.timeout <= 0 {
		b.timeout = 30 * time.Second
	}

	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		b.client = openai.NewClientWithConfig(clientCfg)
	} else {
		logger.Printf("no API key configured, feature extraction degrades to tokenization")
	}

	return b
}

// Represent 为候选人文本提取特征表示
func (f *FeatureBackend) Represent(ctx context.Context, text string) (*types.Representation, error) {
	return f.extract(ctx, text, resumeFeaturePrompt)
}

// RepresentQuery 为搜索查询提取特征表示
func (f *FeatureBackend) RepresentQuery(ctx context.Context, query string) (*types.Representation, error) {
	return f.extract(ctx, query, queryFeaturePrompt)
}

func (f *FeatureBackend) extract(ctx context.Context, text string, systemPrompt string) (*types.Representation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	features := f.extractWithLLM(ctx, text, systemPrompt)
	if len(features) == 0 {
		features = tokenize(text)
	}

	return &types.Representation{
		Kind:     types.RepresentationFeature,
		Features: features,
		Text:     text,
		Model:    f.model,
	}, nil
}

// extractWithLLM 调用聊天模型提取特征，任何失败都返回nil交给分词降级
func (f *FeatureBackend) extractWithLLM(ctx context.Context, text string, systemPrompt string) []string {
	if f.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var resp openai.ChatCompletionResponse
	err := doWithRetry(ctx, f.maxRetries, func(ctx context.Context) error {
		var callErr error
		resp, callErr = f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: f.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
			Temperature: 0.1,
		})
		return callErr
	})
	if err != nil {
		f.logger.Printf("feature extraction call failed, falling back to tokenization: %v", err)
		return nil
	}
	if len(resp.Choices) == 0 {
		return nil
	}

	features, err := ExtractJSONArray(resp.Choices[0].Message.Content)
	if err != nil {
		f.logger.Printf("unparseable feature response, falling back to tokenization: %v", err)
		return nil
	}
	return features
}

// tokenize 小写空白分词降级
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Kind 返回特征表示类型
func (f *FeatureBackend) Kind() types.RepresentationKind { return types.RepresentationFeature }

// Model 返回聊天模型名
func (f *FeatureBackend) Model() string { return f.model }

// Loaded 特征后端总是可用，无客户端时由分词降级兜底
func (f *FeatureBackend) Loaded() bool { return true }
