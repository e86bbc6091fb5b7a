package handler

import (
	"context"
	"testing"

	"resume-match-go/internal/config"
	"resume-match-go/internal/processor"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEmbedder 模拟向量化客户端，所有文本返回同一向量
type MockEmbedder struct {
	vector []float64
	err    error
}

func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func newTestMatchHandler() *MatchHandler {
	matcher := processor.NewMatcher(&MockEmbedder{vector: []float64{1, 0}}, config.MatcherConfig{
		SemanticWeight: 0.6,
		KeywordWeight:  0.4,
		TopMatches:     6,
	})
	return NewMatchHandler(matcher)
}

func TestMatchHandler_HandleMatch(t *testing.T) {
	h := newTestMatchHandler()

	t.Run("默认权重来自配置", func(t *testing.T) {
		report, err := h.HandleMatch(context.Background(), &MatchRequest{
			ResumeText: "resume text",
			JobText:    "job text",
		})
		require.NoError(t, err)
		assert.Equal(t, 0.6, report.Weights.Semantic)
		assert.Equal(t, 0.4, report.Weights.Keyword)
		assert.Equal(t, 60.0, report.FinalScore, "相同向量下语义通道满分")
	})

	t.Run("请求中的权重优先", func(t *testing.T) {
		semantic, keyword := 1.0, 0.0
		report, err := h.HandleMatch(context.Background(), &MatchRequest{
			ResumeText:     "resume text",
			JobText:        "job text",
			SemanticWeight: &semantic,
			KeywordWeight:  &keyword,
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, report.Weights.Semantic)
		assert.Equal(t, 100.0, report.FinalScore)
	})

	t.Run("空文本请求被拒绝", func(t *testing.T) {
		_, err := h.HandleMatch(context.Background(), &MatchRequest{ResumeText: "  ", JobText: "job"})
		assert.ErrorIs(t, err, ErrInvalidMatchRequest)

		_, err = h.HandleMatch(context.Background(), &MatchRequest{ResumeText: "resume", JobText: ""})
		assert.ErrorIs(t, err, ErrInvalidMatchRequest)
	})

	t.Run("关键词通道参与计分", func(t *testing.T) {
		report, err := h.HandleMatch(context.Background(), &MatchRequest{
			ResumeText:        "resume text",
			JobText:           "job text",
			ResumeSkills:      []string{"go"},
			JobRequiredSkills: []string{"go", "rust"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.5, report.KeywordRatio)
		assert.Equal(t, 80.0, report.FinalScore, "100×(0.6×1 + 0.4×0.5)")
	})
}
