package parser

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// ObjectFetcher 从对象存储读取文档内容
type ObjectFetcher interface {
	// FetchObject 读取对象内容；bucket为空时使用默认存储桶
	FetchObject(ctx context.Context, bucket string, objectName string) ([]byte, error)
}

// Fetcher downloads source documents before extraction. HTTP(S) URLs go
// through a timeout-bounded client; "minio://bucket/key" references go
// through the configured object store.
type Fetcher struct {
	httpClient *http.Client
	objects    ObjectFetcher // nil when no object store is configured
	logger     *log.Logger
}

// FetcherOption Fetcher的配置选项
type FetcherOption func(*Fetcher)

// WithObjectFetcher 配置对象存储来源
func WithObjectFetcher(objects ObjectFetcher) FetcherOption {
	return func(f *Fetcher) {
		f.objects = objects
	}
}

// WithFetcherLogger 配置自定义日志记录器
func WithFetcherLogger(logger *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher 创建文档下载器，timeout约束整个下载过程
func NewFetcher(timeout time.Duration, options ...FetcherOption) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	f := &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(os.Stderr, "[Fetcher] ", log.LstdFlags),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Fetch 下载文档内容。失败时返回包装了ErrDownloadFailed的错误。
func (f *Fetcher) Fetch(ctx context.Context, resumeURL string) ([]byte, error) {
	start := time.Now()

	var data []byte
	var err error
	switch {
	case strings.HasPrefix(resumeURL, "minio://"):
		data, err = f.fetchObject(ctx, resumeURL)
	case strings.HasPrefix(resumeURL, "http://"), strings.HasPrefix(resumeURL, "https://"):
		data, err = f.fetchHTTP(ctx, resumeURL)
	default:
		return nil, fmt.Errorf("%w: unsupported URL scheme in %q", ErrDownloadFailed, resumeURL)
	}

	if err != nil {
		f.logger.Printf("download failed for %s after %.2fs: %v", resumeURL, time.Since(start).Seconds(), err)
		return nil, err
	}

	f.logger.Printf("downloaded %d bytes from %s in %.2fs", len(data), resumeURL, time.Since(start).Seconds())
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, resumeURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrDownloadFailed, resp.StatusCode, resumeURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrDownloadFailed, err)
	}
	return data, nil
}

// fetchObject 解析 minio://bucket/key 形式的引用并从对象存储读取
func (f *Fetcher) fetchObject(ctx context.Context, ref string) ([]byte, error) {
	if f.objects == nil {
		return nil, fmt.Errorf("%w: object storage is not configured for %q", ErrDownloadFailed, ref)
	}

	trimmed := strings.TrimPrefix(ref, "minio://")
	bucket := ""
	objectName := trimmed
	if idx := strings.Index(trimmed, "/"); idx > 0 {
		bucket = trimmed[:idx]
		objectName = trimmed[idx+1:]
	}
	if objectName == "" {
		return nil, fmt.Errorf("%w: empty object name in %q", ErrDownloadFailed, ref)
	}

	data, err := f.objects.FetchObject(ctx, bucket, objectName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return data, nil
}
