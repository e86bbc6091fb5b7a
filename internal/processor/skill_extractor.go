package processor

import (
	"sort"
	"strings"

	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// SkillExtractor 从自由文本中抽取硬技能与软技能
// 词典词条在全文中以子串形式出现即视为命中（"java"会命中"javascript"，
// 这是沿用的宽召回语义），另外名词短语候选也会逐一对词典做成员测试
type SkillExtractor struct {
	tax      *taxonomy.Taxonomy
	splitter parser.SentenceSplitter
	logger   zerolog.Logger
}

// NewSkillExtractor 创建技能抽取器
func NewSkillExtractor(tax *taxonomy.Taxonomy, splitter parser.SentenceSplitter) *SkillExtractor {
	return &SkillExtractor{
		tax:      tax,
		splitter: splitter,
		logger:   applogger.Logger.With().Str("component", "skill_extractor").Logger(),
	}
}

// Extract 抽取技能集合，结果去重排序
// 空文本返回空集合而非错误；技能不做置信度排序，命中即在
func (e *SkillExtractor) Extract(text string) types.SkillSet {
	result := types.SkillSet{Hard: []string{}, Soft: []string{}}

	clean := strings.ToLower(parser.CleanText(text))
	if clean == "" {
		return result
	}

	foundHard := make(map[string]struct{})
	foundSoft := make(map[string]struct{})

	// 1. 词典全文子串扫描
	for _, term := range e.tax.HardTerms() {
		if strings.Contains(clean, term) {
			foundHard[term] = struct{}{}
		}
	}
	for _, term := range e.tax.SoftTerms() {
		if strings.Contains(clean, term) {
			foundSoft[term] = struct{}{}
		}
	}

	// 2. 名词短语候选对词典做精确成员测试
	for _, candidate := range e.splitter.NounPhrases(clean) {
		n := taxonomy.Normalize(candidate)
		if e.tax.IsHard(n) {
			foundHard[n] = struct{}{}
		}
		if e.tax.IsSoft(n) {
			foundSoft[n] = struct{}{}
		}
	}

	result.Hard = sortedSlice(foundHard)
	result.Soft = sortedSlice(foundSoft)

	e.logger.Debug().
		Int("hard", len(result.Hard)).
		Int("soft", len(result.Soft)).
		Msg("技能抽取完成")

	return result
}

func sortedSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
