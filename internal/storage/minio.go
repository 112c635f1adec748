package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"talentvault-ai-go/internal/config"
)

// MinIOClient 封装MinIO对象存储访问，作为简历文档的可选来源
type MinIOClient struct {
	client        *minio.Client
	defaultBucket string
	logger        *log.Logger
}

// NewMinIOClient 创建MinIO客户端
func NewMinIOClient(cfg config.MinIOConfig, logger *log.Logger) (*MinIOClient, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[MinIO] ", log.LstdFlags)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化MinIO客户端失败: %w", err)
	}

	logger.Printf("MinIO client initialized for %s (bucket=%s)", cfg.Endpoint, cfg.BucketName)
	return &MinIOClient{
		client:        client,
		defaultBucket: cfg.BucketName,
		logger:        logger,
	}, nil
}

// FetchObject 读取对象全部内容；bucket为空时使用默认存储桶
// 实现parser.ObjectFetcher接口
func (m *MinIOClient) FetchObject(ctx context.Context, bucket string, objectName string) ([]byte, error) {
	if bucket == "" {
		bucket = m.defaultBucket
	}
	if bucket == "" {
		return nil, fmt.Errorf("未配置存储桶")
	}

	obj, err := m.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象失败 %s/%s: %w", bucket, objectName, err)
	}
	defer obj.Close()

	// Stat在这里同时校验对象存在性，GetObject本身是惰性的
	stat, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("对象不存在或不可访问 %s/%s: %w", bucket, objectName, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象内容失败 %s/%s: %w", bucket, objectName, err)
	}

	m.logger.Printf("fetched %s/%s (%d bytes)", bucket, objectName, stat.Size)
	return data, nil
}
