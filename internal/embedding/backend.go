package embedding

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"talentvault-ai-go/internal/types"
)

var (
	// ErrEmptyInput 输入文本为空
	ErrEmptyInput = errors.New("input text is empty")
	// ErrExternalService 外部AI服务调用失败
	ErrExternalService = errors.New("external AI service request failed")
)

// Backend turns text into a searchable representation. The dense backend
// calls a remote embedding model; the feature backend extracts keywords via
// a chat model. Both kinds flow through the same cache and ranker, so a
// deployment picks exactly one backend at startup.
type Backend interface {
	// Represent 为候选人文本生成表示
	Represent(ctx context.Context, text string) (*types.Representation, error)
	// RepresentQuery 为搜索查询生成表示，与Represent产出同一Kind
	RepresentQuery(ctx context.Context, query string) (*types.Representation, error)
	// Kind 表示类型
	Kind() types.RepresentationKind
	// Model 生成表示所用的模型名
	Model() string
	// Loaded 后端是否可用（健康检查用）
	Loaded() bool
}

// ContentID 基于内容生成确定性的表示ID，相同文本得到相同ID
func ContentID(text string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// doWithRetry 执行带退避的单次重试调用
// 仅对可重试错误（超时、限流、5xx）重试，其余错误立即返回
func doWithRetry(ctx context.Context, maxRetries int, call func(ctx context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var err error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if err = call(ctx); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

// isRetryable 判断错误是否值得重试
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"timeout", "deadline exceeded", "connection refused", "connection reset",
		"rate limit", "429", "500", "502", "503", "504",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
