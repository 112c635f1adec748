package parser

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// DocumentExtractor 根据文件扩展名选择提取策略
// PDF优先使用Eino解析器，失败时回退到逐页提取
type DocumentExtractor struct {
	eino   *EinoPDFExtractor
	simple *SimplePDFExtractor
	logger *log.Logger
}

// NewDocumentExtractor 创建文档文本提取器
func NewDocumentExtractor(eino *EinoPDFExtractor, simple *SimplePDFExtractor, logger *log.Logger) *DocumentExtractor {
	if logger == nil {
		logger = log.New(os.Stderr, "[DocExtractor] ", log.LstdFlags)
	}
	return &DocumentExtractor{
		eino:   eino,
		simple: simple,
		logger: logger,
	}
}

// ExtractText 提取文档文本。filename仅用于格式判断，按扩展名分发。
// 不支持的扩展名返回ErrUnsupportedFormat，提取失败返回ErrExtractionFailed。
func (d *DocumentExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtractionFailed)
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".pdf":
		return d.extractPDF(ctx, data, filename)
	case ".docx":
		text, err := ExtractDOCXText(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (d *DocumentExtractor) extractPDF(ctx context.Context, data []byte, filename string) (string, error) {
	if d.eino != nil {
		text, err := d.eino.ExtractTextFromBytes(ctx, data, filename)
		if err == nil {
			return text, nil
		}
		d.logger.Printf("eino extraction failed for %s, trying fallback: %v", filename, err)
	}

	if d.simple != nil {
		text, err := d.simple.ExtractTextFromBytes(data)
		if err == nil {
			return text, nil
		}
		d.logger.Printf("fallback extraction failed for %s: %v", filename, err)
	}

	return "", fmt.Errorf("%w: all PDF extractors failed for %s", ErrExtractionFailed, filename)
}
