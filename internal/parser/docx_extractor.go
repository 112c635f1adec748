package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DOCX is a ZIP archive; the document body lives in word/document.xml with
// one <w:p> element per paragraph. Paragraph boundaries become newlines and
// the remaining markup is stripped, which matches how the upstream ATS
// produced these files (plain paragraphs, no tables).

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractDOCXText 提取DOCX文档的段落文本，段落之间以换行分隔
func ExtractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening DOCX archive: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("opening document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("reading document.xml: %w", err)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no word/document.xml found in DOCX archive")
	}

	body := string(docXML)
	body = strings.ReplaceAll(body, "</w:p>", "\n")
	body = strings.ReplaceAll(body, "<w:tab/>", "\t")
	body = docxTagPattern.ReplaceAllString(body, "")

	var paragraphs []string
	for _, line := range strings.Split(body, "\n") {
		paragraphs = append(paragraphs, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}
