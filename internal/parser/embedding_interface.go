/*
此文件定义文本向量化接口，签名兼容 cloudwego/eino 的 embedding.Embedder，
便于以任何向量模型实现替换，而不依赖具体云厂商。
*/

package parser

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/embedding"
)

// ErrEmbeddingUnavailable 向量化服务不可用（模型无法加载或无法连通）
var ErrEmbeddingUnavailable = errors.New("向量化服务不可用")

// TextEmbedder 文本向量化接口
// 对同一模型版本结果确定，返回向量数与输入文本数一致
type TextEmbedder interface {
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)
}
