package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockVectorCache 内存版向量缓存
type MockVectorCache struct {
	store  map[string][]float64
	getErr error
}

func (m *MockVectorCache) GetUnitVector(ctx context.Context, model, text string) ([]float64, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.store[text]; ok {
		return v, nil
	}
	return nil, errors.New("缓存未命中")
}

func (m *MockVectorCache) SetUnitVector(ctx context.Context, model, text string, vector []float64) error {
	m.store[text] = vector
	return nil
}

// MockInnerEmbedder 记录调用的内层向量化客户端
type MockInnerEmbedder struct {
	calls  [][]string
	vector []float64
	err    error
}

func (m *MockInnerEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	m.calls = append(m.calls, texts)
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("命中缓存时不调用内层", func(t *testing.T) {
		cache := &MockVectorCache{store: map[string][]float64{"hello": {0.5, 0.5}}}
		inner := &MockInnerEmbedder{vector: []float64{1, 0}}
		c := NewCachedEmbedder(inner, cache, "test-model")

		vectors, err := c.EmbedStrings(ctx, []string{"hello"})
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0.5, 0.5}}, vectors)
		assert.Empty(t, inner.calls, "缓存命中时不应触达内层客户端")
	})

	t.Run("未命中时批量调用内层并回写", func(t *testing.T) {
		cache := &MockVectorCache{store: map[string][]float64{}}
		inner := &MockInnerEmbedder{vector: []float64{1, 0}}
		c := NewCachedEmbedder(inner, cache, "test-model")

		vectors, err := c.EmbedStrings(ctx, []string{"a", "b"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Len(t, inner.calls, 1, "未命中的文本应合并成一次内层调用")
		assert.Contains(t, cache.store, "a", "结果应回写缓存")
		assert.Contains(t, cache.store, "b")
	})

	t.Run("部分命中时只向量化缺口", func(t *testing.T) {
		cache := &MockVectorCache{store: map[string][]float64{"cached": {0.5, 0.5}}}
		inner := &MockInnerEmbedder{vector: []float64{1, 0}}
		c := NewCachedEmbedder(inner, cache, "test-model")

		vectors, err := c.EmbedStrings(ctx, []string{"cached", "fresh"})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.5}, vectors[0])
		assert.Equal(t, []float64{1, 0}, vectors[1])
		require.Len(t, inner.calls, 1)
		assert.Equal(t, []string{"fresh"}, inner.calls[0], "已缓存的文本不应重复向量化")
	})

	t.Run("内层失败时错误上抛", func(t *testing.T) {
		cache := &MockVectorCache{store: map[string][]float64{}}
		inner := &MockInnerEmbedder{err: errors.New("服务不可用")}
		c := NewCachedEmbedder(inner, cache, "test-model")

		_, err := c.EmbedStrings(ctx, []string{"text"})
		assert.Error(t, err)
	})
}
