package parser

import "errors"

// 文档获取与文本提取阶段的基础错误类型
var (
	// ErrDownloadFailed 下载简历文件失败
	ErrDownloadFailed = errors.New("failed to download resume file")
	// ErrExtractionFailed 从文档中提取文本失败
	ErrExtractionFailed = errors.New("failed to extract document text")
	// ErrUnsupportedFormat 不支持的文件格式
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
