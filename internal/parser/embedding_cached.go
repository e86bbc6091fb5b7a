package parser

import (
	"context"

	applogger "resume-match-go/internal/logger"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

// VectorCache 单元向量缓存接口，由 storage.Redis 实现
// 未命中以错误或空向量表示，实现方自行决定过期策略
type VectorCache interface {
	GetUnitVector(ctx context.Context, model, text string) ([]float64, error)
	SetUnitVector(ctx context.Context, model, text string, vector []float64) error
}

// CachedEmbedder 带读穿缓存的TextEmbedder装饰器
// 缓存故障只降级为直接调用底层embedder，绝不让缓存问题影响请求结果
type CachedEmbedder struct {
	inner  TextEmbedder
	cache  VectorCache
	model  string // 缓存键中的模型版本，模型更换后旧缓存自然失效
	logger zerolog.Logger
}

// NewCachedEmbedder 创建缓存装饰器
func NewCachedEmbedder(inner TextEmbedder, cache VectorCache, model string) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: applogger.Logger.With().Str("component", "cached_embedder").Logger(),
	}
}

// EmbedStrings 优先读取缓存，未命中的文本批量调用底层embedder后回填
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	results := make([][]float64, len(texts))

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		vec, err := c.cache.GetUnitVector(ctx, c.model, text)
		if err == nil && len(vec) > 0 {
			results[i] = vec
			continue
		}
		if err != nil {
			c.logger.Debug().Err(err).Msg("向量缓存读取未命中或失败")
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return results, nil
	}

	embedded, err := c.inner.EmbedStrings(ctx, missTexts, opts...)
	if err != nil {
		return nil, err
	}

	for j, idx := range missIdx {
		if j >= len(embedded) {
			break
		}
		results[idx] = embedded[j]
		// 回填是尽力而为，失败只记日志
		if cacheErr := c.cache.SetUnitVector(ctx, c.model, texts[idx], embedded[j]); cacheErr != nil {
			c.logger.Debug().Err(cacheErr).Msg("向量缓存写入失败")
		}
	}

	c.logger.Debug().
		Int("total", len(texts)).
		Int("misses", len(missTexts)).
		Msg("embedding缓存统计")

	return results, nil
}
