package parser

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFExtractor 使用 Eino PDF Parser 做布局感知的文本提取
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	logger *log.Logger
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoPDFOption {
	return func(e *EinoPDFExtractor) {
		e.logger = logger
	}
}

// NewEinoPDFExtractor 初始化 Eino PDF 文本提取器
// 默认配置为不按页面分割，以获取整个文档的连续文本
func NewEinoPDFExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false, // 希望获取整个PDF的文本作为单个字符串
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFExtractor{
		parser: p,
		logger: log.New(os.Stderr, "[EinoPDF] ", log.LstdFlags),
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractTextFromBytes 从字节数组提取完整的纯文本内容
func (e *EinoPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(uri),
	)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("eino PDF parse failed for %s: %v (%.2fs)", uri, err, duration.Seconds())
		return "", fmt.Errorf("eino PDF parser failed for URI %s: %w", uri, err)
	}

	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF parser returned no documents for URI %s", uri)
	}

	var parts []string
	for _, doc := range docs {
		parts = append(parts, doc.Content)
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return "", fmt.Errorf("eino PDF parser returned empty text for URI %s", uri)
	}

	e.logger.Printf("extracted %d chars from %s (%.2fs)", len(text), uri, duration.Seconds())
	return text, nil
}
