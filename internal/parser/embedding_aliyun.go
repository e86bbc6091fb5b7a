package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"resume-match-go/internal/config"
	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var embedTracer = otel.Tracer("resume-match-go/parser/embedding")

// AliyunEmbedder 实现 embedding.Embedder 接口 (OpenAI兼容端点)
type AliyunEmbedder struct {
	apiKey     string
	model      string // 默认模型
	dimensions int    // 默认维度
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewAliyunEmbedder 创建新的阿里云Embedder
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     applogger.Logger.With().Str("component", "aliyun_embedder").Logger(),
	}, nil
}

// GetDimensions 返回嵌入器配置的维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// aliyunEmbeddingRequest 阿里云Embedding请求结构 (OpenAI兼容)
type aliyunEmbeddingRequest struct {
	Input          interface{} `json:"input"` // string 或 []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

// aliyunEmbeddingResponse 阿里云Embedding响应结构 (OpenAI兼容)
type aliyunEmbeddingResponse struct {
	Object string             `json:"object"`
	Data   []aliyunDataEntry  `json:"data"`
	Model  string             `json:"model"`
	Usage  aliyunUsage        `json:"usage"`
	ID     string             `json:"id,omitempty"`
	Error  *aliyunAPIError    `json:"error,omitempty"`
}

type aliyunDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type aliyunUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// aliyunAPIError API级错误，可能随 200 OK 一起返回
type aliyunAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本转换为向量，实现 cloudwego/eino embedding.Embedder 接口
// 服务不可达或API报错时返回包装了 ErrEmbeddingUnavailable 的错误
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	effectiveModel := a.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	ctx, span := embedTracer.Start(ctx, "embedding.embed_strings")
	defer span.End()
	span.SetAttributes(
		attribute.String("embedding.model", effectiveModel),
		attribute.Int("embedding.texts", len(texts)),
	)

	var inputBody interface{}
	if len(texts) == 1 {
		inputBody = texts[0]
	} else {
		inputBody = texts
	}

	reqBody := aliyunEmbeddingRequest{
		Input: inputBody,
		Model: effectiveModel,
	}
	if a.dimensions > 0 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	a.logger.Debug().Int("texts", len(texts)).Str("model", effectiveModel).Msg("发送embedding请求")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		wrapped := fmt.Errorf("%w: 发送HTTP请求失败: %v", ErrEmbeddingUnavailable, err)
		tracing.RecordError(span, wrapped, tracing.ErrorTypeHTTP)
		return nil, wrapped
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := fmt.Errorf("%w: 读取响应体失败: %v", ErrEmbeddingUnavailable, err)
		tracing.RecordError(span, wrapped, tracing.ErrorTypeHTTP)
		return nil, wrapped
	}

	if resp.StatusCode != http.StatusOK {
		var apiError aliyunAPIError
		var wrapped error
		if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
			wrapped = fmt.Errorf("%w: API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				ErrEmbeddingUnavailable, resp.StatusCode, apiError.Type, apiError.Message, apiError.Code)
		} else {
			wrapped = fmt.Errorf("%w: API调用失败, 状态码: %d, 响应: %s", ErrEmbeddingUnavailable, resp.StatusCode, string(body))
		}
		tracing.RecordError(span, wrapped, tracing.ErrorTypeEmbedding)
		return nil, wrapped
	}

	var parsedResp aliyunEmbeddingResponse
	if err := json.Unmarshal(body, &parsedResp); err != nil {
		wrapped := fmt.Errorf("解析响应JSON失败: %w", err)
		tracing.RecordError(span, wrapped, tracing.ErrorTypeEmbedding)
		return nil, wrapped
	}

	if parsedResp.Error != nil && parsedResp.Error.Message != "" {
		wrapped := fmt.Errorf("%w: API返回错误: 类型=%s, 消息='%s', Code=%s",
			ErrEmbeddingUnavailable, parsedResp.Error.Type, parsedResp.Error.Message, parsedResp.Error.Code)
		tracing.RecordError(span, wrapped, tracing.ErrorTypeEmbedding)
		return nil, wrapped
	}

	// 按响应中的index归位，接口不保证返回顺序
	outputEmbeddings := make([][]float64, len(parsedResp.Data))
	for i, dataEntry := range parsedResp.Data {
		idx := dataEntry.Index
		if idx < 0 || idx >= len(outputEmbeddings) {
			idx = i
		}
		outputEmbeddings[idx] = dataEntry.Embedding
	}

	a.logger.Debug().
		Int("texts", len(texts)).
		Int("dim", firstEmbeddingDim(outputEmbeddings)).
		Int("total_tokens", parsedResp.Usage.TotalTokens).
		Msg("embedding完成")

	return outputEmbeddings, nil
}

// firstEmbeddingDim 安全获取首个向量的维度，用于日志
func firstEmbeddingDim(embeddings [][]float64) int {
	if len(embeddings) > 0 {
		return len(embeddings[0])
	}
	return 0
}
