package parser

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnsupportedFormat 不支持的文件格式
var ErrUnsupportedFormat = errors.New("不支持的文件格式，仅支持 PDF 或 DOCX")

var docTracer = otel.Tracer("resume-match-go/parser/document")

// TextExtractor 单一格式的文本提取器
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, uri string) (string, error)
}

// DocumentExtractor 按文件扩展名分发到具体格式的提取器
type DocumentExtractor struct {
	pdf    TextExtractor
	docx   TextExtractor
	logger zerolog.Logger
}

// NewDocumentExtractor 创建文档提取器
func NewDocumentExtractor(pdf, docx TextExtractor) *DocumentExtractor {
	return &DocumentExtractor{
		pdf:    pdf,
		docx:   docx,
		logger: applogger.Logger.With().Str("component", "document_extractor").Logger(),
	}
}

// ExtractText 自动识别扩展名并提取文本
// 不认识的扩展名返回 ErrUnsupportedFormat；
// 提取失败时返回空串而非半解码内容，细节记入日志
func (d *DocumentExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	ctx, span := docTracer.Start(ctx, "document.extract_text")
	defer span.End()

	ext := strings.ToLower(filepath.Ext(filename))
	span.SetAttributes(
		attribute.String("doc.filename", tracing.Truncate(filename, tracing.DefaultMaxLength)),
		attribute.String("doc.ext", ext),
		attribute.Int("doc.bytes", len(data)),
	)

	var extractor TextExtractor
	switch ext {
	case ".pdf":
		extractor = d.pdf
	case ".docx":
		extractor = d.docx
	default:
		tracing.RecordError(span, ErrUnsupportedFormat, tracing.ErrorTypeValidation)
		return "", ErrUnsupportedFormat
	}

	text, err := extractor.ExtractText(ctx, data, filename)
	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeDecode,
			attribute.String("doc.format", strings.TrimPrefix(ext, ".")))
		d.logger.Error().Err(err).Str("filename", filename).Msg("文档解码失败")
		return "", err
	}

	span.SetAttributes(
		attribute.Int("doc.chars", len(text)),
		attribute.String("doc.preview", tracing.Truncate(text, tracing.MaxTextLength)),
	)
	return text, nil
}
