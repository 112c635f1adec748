package parser

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SimplePDFExtractor is the page-by-page fallback used when the layout-aware
// extractor fails. It collects the plain text of every page and joins the
// pages with newlines.
type SimplePDFExtractor struct {
	logger *log.Logger
}

// NewSimplePDFExtractor 创建逐页回退PDF提取器
func NewSimplePDFExtractor(logger *log.Logger) *SimplePDFExtractor {
	if logger == nil {
		logger = log.New(os.Stderr, "[SimplePDF] ", log.LstdFlags)
	}
	return &SimplePDFExtractor{logger: logger}
}

// ExtractTextFromBytes 逐页提取PDF纯文本
func (s *SimplePDFExtractor) ExtractTextFromBytes(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var sb strings.Builder
	totalPages := reader.NumPage()
	extracted := 0
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败不中断，继续提取其余页面
			s.logger.Printf("page %d/%d extraction failed: %v", i, totalPages, err)
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
			extracted++
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text extracted from %d pages", totalPages)
	}

	s.logger.Printf("extracted %d chars from %d/%d pages", len(text), extracted, totalPages)
	return text, nil
}
