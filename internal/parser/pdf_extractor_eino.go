package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	applogger "resume-match-go/internal/logger"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"
)

// EinoPDFExtractor 使用 Eino PDF Parser 提取文本
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	logger zerolog.Logger
}

// NewEinoPDFExtractor 初始化 Eino PDF 文本提取器
// 配置为不按页面分割，以获取整个文档的连续文本
func NewEinoPDFExtractor(ctx context.Context) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false, // 获取整个PDF的文本作为单个字符串
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	return &EinoPDFExtractor{
		parser: p,
		logger: applogger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}, nil
}

// ExtractText 从PDF字节流中提取完整的纯文本内容
func (e *EinoPDFExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri)
}

// ExtractFromReader 从 io.Reader 中提取文本
func (e *EinoPDFExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		e.logger.Error().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF提取失败")
		return "", fmt.Errorf("eino PDF解析失败 (URI %s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF解析无结果 (URI %s)", uri)
	}

	var content strings.Builder
	for i, doc := range docs {
		content.WriteString(doc.Content)
		if i < len(docs)-1 {
			content.WriteString("\n\n")
		}
	}

	text := content.String()
	e.logger.Debug().Int("chars", len(text)).Dur("duration", duration).Msg("PDF提取完成")
	return text, nil
}
