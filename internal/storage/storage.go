package storage

import (
	"log"
	"os"

	"talentvault-ai-go/internal/config"
)

// Storage 聚合服务用到的存储组件
// Representations始终存在；MinIO仅在配置了对象存储时存在
type Storage struct {
	Representations *RepresentationCache
	MinIO           *MinIOClient
}

// NewStorage 按配置初始化存储层
func NewStorage(cfg *config.Config, logger *log.Logger) (*Storage, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[Storage] ", log.LstdFlags)
	}

	s := &Storage{
		Representations: NewRepresentationCache(),
	}

	if cfg.MinIO.Enabled() {
		minioClient, err := NewMinIOClient(cfg.MinIO, logger)
		if err != nil {
			return nil, err
		}
		s.MinIO = minioClient
	}

	return s, nil
}
