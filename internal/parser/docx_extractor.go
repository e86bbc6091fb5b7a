package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	applogger "resume-match-go/internal/logger"

	"github.com/rs/zerolog"
)

// DocxExtractor 从DOCX文件提取纯文本
// DOCX是包含 word/document.xml 的zip包，逐段落提取其中的文本节点即可
type DocxExtractor struct {
	logger zerolog.Logger
}

// NewDocxExtractor 创建DOCX提取器
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{
		logger: applogger.Logger.With().Str("component", "docx_extractor").Logger(),
	}
}

// docx document.xml 中需要的节点：w:p 段落、w:t 文本
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Texts []string `xml:"r>t"`
}

// ExtractText 从DOCX字节流中提取文本，段落之间以换行分隔
func (e *DocxExtractor) ExtractText(_ context.Context, data []byte, uri string) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开DOCX压缩包失败 (URI %s): %w", uri, err)
	}

	var docFile *zip.File
	for _, f := range zipReader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("DOCX缺少 word/document.xml (URI %s)", uri)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("读取 word/document.xml 失败: %w", err)
	}
	defer rc.Close()

	xmlData, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("读取 word/document.xml 失败: %w", err)
	}

	var doc docxDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return "", fmt.Errorf("解析 word/document.xml 失败: %w", err)
	}

	var lines []string
	for _, p := range doc.Body.Paragraphs {
		lines = append(lines, strings.Join(p.Texts, ""))
	}

	text := strings.Join(lines, "\n")
	e.logger.Debug().Int("paragraphs", len(lines)).Int("chars", len(text)).Msg("DOCX提取完成")
	return text, nil
}
