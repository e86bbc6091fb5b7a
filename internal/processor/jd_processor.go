package processor

import (
	"regexp"
	"strings"

	"resume-match-go/internal/constants"
	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

var (
	// 连续两个以上大写字母视为缩写词（AWS、CI/CD 里的 CI 等）
	acronymPattern = regexp.MustCompile(`[A-Z]{2,}`)

	responsibilityHints = []string{"responsible", "responsibilities", "work with", "collaborate", "lead", "design", "develop"}
	requirementHints    = []string{"require", "requirement", "must have", "qualification", "experience", "years"}
)

// JDProcessor 把岗位描述文本加工成结构化岗位
// 章节切分在原始文本上做（保留行结构），工具技术栈抽取在归一化文本上做
type JDProcessor struct {
	splitter parser.SentenceSplitter
	keywords parser.KeywordExtractor
	topK     int
	logger   zerolog.Logger
}

// NewJDProcessor 创建岗位描述处理器，topK 限制关键词抽取数量
func NewJDProcessor(splitter parser.SentenceSplitter, keywords parser.KeywordExtractor, topK int) *JDProcessor {
	if topK <= 0 {
		topK = constants.DefaultKeywordTopK
	}
	return &JDProcessor{
		splitter: splitter,
		keywords: keywords,
		topK:     topK,
		logger:   applogger.Logger.With().Str("component", "jd_processor").Logger(),
	}
}

// ParseJobText 结构化解析岗位描述
func (p *JDProcessor) ParseJobText(rawText string) *types.ParsedJob {
	clean := parser.CleanText(rawText)
	sections := parser.SplitJobSections(rawText)

	responsibilities, requirements := p.assignSections(sections, clean)

	nounChunks := p.splitter.NounPhrases(clean)
	if len(nounChunks) > constants.MaxNounChunks {
		nounChunks = nounChunks[:constants.MaxNounChunks]
	}

	result := &types.ParsedJob{
		RawText:          rawText,
		CleanText:        clean,
		Sections:         sections,
		Responsibilities: responsibilities,
		Requirements:     requirements,
		ToolsAndTech:     p.extractToolsAndTech(clean),
		NounChunks:       nounChunks,
	}

	p.logger.Debug().
		Int("sections", len(sections)).
		Int("tools", len(result.ToolsAndTech)).
		Msg("岗位描述解析完成")

	return result
}

// assignSections 把切出的章节分派到职责/要求两类
// 两类都没切出来时退化为逐句分类
func (p *JDProcessor) assignSections(sections types.SectionMap, clean string) (responsibilities, requirements string) {
	var respParts, reqParts []string
	for _, sec := range sections {
		label := strings.ToLower(sec.Label)
		switch {
		case strings.Contains(label, "respons") || strings.Contains(label, "what you'll") || strings.Contains(label, "you will"):
			respParts = append(respParts, sec.Content)
		case strings.Contains(label, "require") || strings.Contains(label, "qualif") || strings.Contains(label, "skill"):
			reqParts = append(reqParts, sec.Content)
		}
	}
	responsibilities = strings.Join(respParts, " ")
	requirements = strings.Join(reqParts, " ")

	if responsibilities != "" || requirements != "" {
		return responsibilities, requirements
	}

	// 章节分派全部落空时按句子内容猜测归属
	var respSent, reqSent []string
	for _, sentence := range p.splitter.SplitSentences(clean) {
		lower := strings.ToLower(sentence)
		if containsAny(lower, requirementHints) {
			reqSent = append(reqSent, sentence)
		} else if containsAny(lower, responsibilityHints) {
			respSent = append(respSent, sentence)
		}
	}
	return strings.Join(respSent, " "), strings.Join(reqSent, " ")
}

// extractToolsAndTech 从岗位描述里抽取工具与技术栈词
// 三路候选：统计关键词（命中技术词表、缩写词、短单词）、
// 技术词表全文子串命中；顺序稳定去重，总量封顶 topK
func (p *JDProcessor) extractToolsAndTech(clean string) []string {
	lower := strings.ToLower(clean)

	ordered := []string{}
	seen := make(map[string]struct{})
	add := func(term string) {
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		ordered = append(ordered, term)
	}

	for _, kw := range p.keywords.ExtractKeywords(clean, p.topK) {
		if len(ordered) >= p.topK {
			break
		}
		term := kw.Term
		termLower := strings.ToLower(term)
		switch {
		case containsAnyTech(termLower):
			add(term)
		case acronymPattern.MatchString(term):
			add(term)
		case !strings.Contains(term, " ") && len(term) <= 20 && strings.Contains(lower, termLower):
			add(term)
		}
	}

	for _, term := range taxonomy.DefaultTechTerms {
		if len(ordered) >= p.topK {
			break
		}
		if strings.Contains(lower, term) {
			add(term)
		}
	}

	return ordered
}

func containsAnyTech(termLower string) bool {
	for _, tech := range taxonomy.DefaultTechTerms {
		if strings.Contains(termLower, tech) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
