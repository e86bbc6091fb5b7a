package handler

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"resume-match-go/internal/config"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextExtractor 固定返回预设文本，绕过真实文件解码
type stubTextExtractor struct {
	text string
}

func (s *stubTextExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	return s.text, nil
}

func newTestAnalyzeHandler(t *testing.T, resumeText string) *AnalyzeHandler {
	t.Helper()
	tax, err := taxonomy.Load(
		filepath.Join("..", "..", "..", "data", "skills.json"),
		filepath.Join("..", "..", "..", "data", "skills_dubai.json"),
	)
	require.NoError(t, err, "加载词典文件不应失败")

	splitter := parser.NewHeuristicSplitter()
	stub := &stubTextExtractor{text: resumeText}
	matcher := processor.NewMatcher(&MockEmbedder{vector: []float64{1, 0}}, config.MatcherConfig{
		SemanticWeight: 0.6,
		KeywordWeight:  0.4,
		TopMatches:     6,
	})
	return NewAnalyzeHandler(
		&config.Config{},
		parser.NewDocumentExtractor(stub, stub),
		processor.NewResumeProcessor(splitter),
		processor.NewJDProcessor(splitter, parser.NewFrequencyKeywordExtractor(), 30),
		processor.NewSkillExtractor(tax, splitter),
		processor.NewMissingSkillDetector(tax),
		matcher,
	)
}

// lowerSet 小写去重后排序，便于集合比较
func lowerSet(items []string) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		seen[strings.ToLower(item)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for item := range seen {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func TestAnalyzeHandler_HandleAnalyze(t *testing.T) {
	resumeText := "Experienced frontend engineer working daily with JavaScript and React frameworks\n" +
		"Delivered several single page applications for international clients recently"

	t.Run("岗位必备技能以tools_and_tech为准", func(t *testing.T) {
		h := newTestAnalyzeHandler(t, resumeText)
		jobText := "Requirements:\nJavaScript experience and good teamwork working on our page"

		resp, err := h.HandleAnalyze(context.Background(), []byte("raw"), "resume.pdf", jobText)
		require.NoError(t, err)
		require.NotEmpty(t, resp.Job.ToolsAndTech, "岗位解析应抽出工具技术栈")

		// missing ∪ matched 必须恰好等于小写化的 tools_and_tech
		reported := append([]string{}, resp.MissingSkills.MissingHard...)
		reported = append(reported, resp.MissingSkills.MissingSoft...)
		reported = append(reported, resp.MissingSkills.MissingTools...)
		reported = append(reported, resp.MissingSkills.MissingCloud...)
		reported = append(reported, resp.MissingSkills.Matched...)
		assert.Equal(t, lowerSet(resp.Job.ToolsAndTech), lowerSet(reported),
			"缺失与命中集合应完全来自结构化解析出的 tools_and_tech")

		// "good" 里的 go 子串不应被当成岗位必备技能
		assert.NotContains(t, reported, "go")

		// 简历命中了 javascript，应落到 matched 而非缺失桶
		assert.Contains(t, resp.MissingSkills.Matched, "javascript")
		assert.NotContains(t, resp.MissingSkills.MissingHard, "javascript")
	})

	t.Run("不支持的扩展名原样透传", func(t *testing.T) {
		h := newTestAnalyzeHandler(t, resumeText)
		_, err := h.HandleAnalyze(context.Background(), []byte("raw"), "resume.txt", "any job")
		assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
	})

	t.Run("响应携带请求标识", func(t *testing.T) {
		h := newTestAnalyzeHandler(t, resumeText)
		resp, err := h.HandleAnalyze(context.Background(), []byte("raw"), "resume.docx", "Requirements:\nPython and SQL")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.RequestID)
	})
}
