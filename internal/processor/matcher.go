package processor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// Matcher 计算简历与岗位描述的匹配分
// 语义通道：逐行向量化后均值池化，余弦相似度仿射映射到[0,1]；
// 关键词通道：岗位要求技能在简历技能中的命中比例；
// 两通道加权合成百分制总分
type Matcher struct {
	embedder        parser.TextEmbedder
	semanticWeight  float64
	keywordWeight   float64
	topMatchesLimit int
	logger          zerolog.Logger
}

// NewMatcher 创建匹配器，权重与明细条数取配置值
func NewMatcher(embedder parser.TextEmbedder, cfg config.MatcherConfig) *Matcher {
	sw, kw := cfg.SemanticWeight, cfg.KeywordWeight
	if sw == 0 && kw == 0 {
		sw = constants.DefaultSemanticWeight
		kw = constants.DefaultKeywordWeight
	}
	limit := cfg.TopMatches
	if limit <= 0 {
		limit = constants.DefaultTopMatches
	}
	return &Matcher{
		embedder:        embedder,
		semanticWeight:  sw,
		keywordWeight:   kw,
		topMatchesLimit: limit,
		logger:          applogger.Logger.With().Str("component", "matcher").Logger(),
	}
}

// DefaultWeights 返回配置的默认权重，供未显式传权重的调用方使用
func (m *Matcher) DefaultWeights() (semantic, keyword float64) {
	return m.semanticWeight, m.keywordWeight
}

// Match 执行一次完整匹配
// resumeSkills/jobRequiredSkills 用于关键词通道，任一为空时退化为
// 要求词在简历全文中的子串命中率；向量化失败时整体返回错误，
// 但明细（top_matches）计算失败只会降级为空列表，不影响总分
func (m *Matcher) Match(ctx context.Context, resumeText, jobText string, resumeSkills, jobRequiredSkills []string, semanticWeight, keywordWeight float64) (*types.MatchReport, error) {
	resumeUnits := splitUnits(resumeText)
	jobUnits := splitUnits(jobText)

	resumeEmbs, err := m.embedder.EmbedStrings(ctx, resumeUnits)
	if err != nil {
		return nil, fmt.Errorf("计算简历向量失败: %w", err)
	}
	jobEmbs, err := m.embedder.EmbedStrings(ctx, jobUnits)
	if err != nil {
		return nil, fmt.Errorf("计算岗位向量失败: %w", err)
	}

	resumeVec := meanPool(resumeEmbs)
	jobVec := meanPool(jobEmbs)
	semanticSim := mappedCosine(resumeVec, jobVec)

	keywordRatio := m.keywordChannel(resumeText, resumeSkills, jobRequiredSkills)

	finalScore := round2(100 * (semanticWeight*semanticSim + keywordWeight*keywordRatio))

	report := &types.MatchReport{
		SemanticSim:  round4(semanticSim),
		KeywordRatio: round4(keywordRatio),
		FinalScore:   finalScore,
		Weights: types.MatchWeights{
			Semantic: semanticWeight,
			Keyword:  keywordWeight,
		},
		TopMatches: m.topPairs(resumeUnits, jobUnits, resumeEmbs, jobEmbs),
		Meta: types.MatchMeta{
			ResumeSentences: len(resumeUnits),
			JobSentences:    len(jobUnits),
		},
	}

	m.logger.Debug().
		Float64("semantic_sim", report.SemanticSim).
		Float64("keyword_ratio", report.KeywordRatio).
		Float64("final_score", report.FinalScore).
		Msg("匹配计算完成")

	return report, nil
}

// keywordChannel 选择关键词通道的计算方式
func (m *Matcher) keywordChannel(resumeText string, resumeSkills, jobRequiredSkills []string) float64 {
	if len(jobRequiredSkills) == 0 {
		return 0.0
	}
	if len(resumeSkills) > 0 {
		return keywordMatchRatio(jobRequiredSkills, resumeSkills)
	}
	// 简历侧没有结构化技能时退化为全文子串命中率
	lower := strings.ToLower(resumeText)
	hits := 0
	for _, term := range jobRequiredSkills {
		if strings.Contains(lower, strings.ToLower(term)) {
			hits++
		}
	}
	return float64(hits) / float64(len(jobRequiredSkills))
}

// topPairs 计算逐行两两相似度并取前 N 对作为可解释性明细
// 任何形状异常（向量条数与行数不符、维度不一致）都降级为空列表
func (m *Matcher) topPairs(resumeUnits, jobUnits []string, resumeEmbs, jobEmbs [][]float64) []types.TopMatch {
	empty := []types.TopMatch{}
	if len(resumeEmbs) != len(resumeUnits) || len(jobEmbs) != len(jobUnits) {
		m.logger.Warn().Msg("向量条数与文本行数不一致，跳过明细计算")
		return empty
	}

	type pairSim struct {
		i, j int
		sim  float64
	}
	pairs := make([]pairSim, 0, len(resumeEmbs)*len(jobEmbs))
	for i, rv := range resumeEmbs {
		for j, jv := range jobEmbs {
			sim, ok := rawCosine(rv, jv)
			if !ok {
				m.logger.Warn().Int("resume_line", i).Int("job_line", j).Msg("向量维度不一致，跳过明细计算")
				return empty
			}
			pairs = append(pairs, pairSim{i: i, j: j, sim: sim})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].sim > pairs[b].sim
	})

	limit := m.topMatchesLimit
	if limit > len(pairs) {
		limit = len(pairs)
	}
	out := make([]types.TopMatch, 0, limit)
	for _, p := range pairs[:limit] {
		out = append(out, types.TopMatch{
			ResumeSnippet: resumeUnits[p.i],
			JobSnippet:    jobUnits[p.j],
			Cosine:        round4((p.sim + 1.0) / 2.0),
		})
	}
	return out
}

// splitUnits 把文本按行切成向量化单元，全空白行丢弃
// 没有任何非空行时退回整段文本，保证至少有一个单元
func splitUnits(text string) []string {
	var units []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			units = append(units, line)
		}
	}
	if len(units) == 0 {
		return []string{text}
	}
	return units
}

// meanPool 对一组向量做逐维均值，空输入返回 nil
func meanPool(embs [][]float64) []float64 {
	if len(embs) == 0 || len(embs[0]) == 0 {
		return nil
	}
	dim := len(embs[0])
	pooled := make([]float64, dim)
	count := 0
	for _, e := range embs {
		if len(e) != dim {
			continue
		}
		for i, v := range e {
			pooled[i] += v
		}
		count++
	}
	if count == 0 {
		return nil
	}
	for i := range pooled {
		pooled[i] /= float64(count)
	}
	return pooled
}

// mappedCosine 余弦相似度仿射映射 (sim+1)/2，结果落在[0,1]
// 任一侧向量缺失或为零向量时返回 0 而不是 0.5，
// 避免空文本得到"中性相似度"
func mappedCosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return (sim + 1.0) / 2.0
}

// rawCosine 原始余弦相似度，维度不一致时 ok 为 false
// 零向量按相似度 0 处理
func rawCosine(a, b []float64) (sim float64, ok bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, true
	}
	sim = dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, true
}

// keywordMatchRatio 岗位要求技能在简历技能中的命中比例
// 精确命中优先，其次双向子串（"java"匹配"javascript"，反之亦然）
func keywordMatchRatio(required, resume []string) float64 {
	req := normalizeList(required)
	if len(req) == 0 {
		return 0.0
	}
	res := normalizeList(resume)
	resSet := make(map[string]struct{}, len(res))
	for _, s := range res {
		resSet[s] = struct{}{}
	}

	matched := 0
	for _, r := range req {
		if _, ok := resSet[r]; ok {
			matched++
			continue
		}
		for _, s := range res {
			if strings.Contains(s, r) || strings.Contains(r, s) {
				matched++
				break
			}
		}
	}

	ratio := float64(matched) / float64(len(req))
	if ratio < 0 {
		return 0.0
	}
	if ratio > 1 {
		return 1.0
	}
	return ratio
}

func normalizeList(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := strings.ToLower(strings.TrimSpace(t))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
