package processor

import (
	"strings"

	"resume-match-go/internal/constants"
	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// 经验相关的提示词，用于没有经验章节时从全文捞相关句子
var experienceHints = []string{"experience", "years", "worked", "responsible", "led", "developed"}

// 过于宽泛的候选词，不计入技能候选
var genericCandidates = map[string]struct{}{
	"experience": {},
	"years":      {},
	"team":       {},
	"work":       {},
}

// ResumeProcessor 把纯文本简历加工成结构化简历
// 流程：页眉页脚剥离 -> 文本归一化 -> 联系方式抽取 -> 章节切分 ->
// 技能候选/经验/教育/项目/摘要字段装配
type ResumeProcessor struct {
	splitter parser.SentenceSplitter
	logger   zerolog.Logger
}

// NewResumeProcessor 创建简历处理器
func NewResumeProcessor(splitter parser.SentenceSplitter) *ResumeProcessor {
	return &ResumeProcessor{
		splitter: splitter,
		logger:   applogger.Logger.With().Str("component", "resume_processor").Logger(),
	}
}

// BuildStructuredResume 构建结构化简历
// 空输入返回全空结构体而非 nil，方便上层直接序列化
func (p *ResumeProcessor) BuildStructuredResume(rawText string) *types.ParsedResume {
	result := &types.ParsedResume{
		Skills: []string{},
		Contact: types.ContactInfo{
			Emails: []string{},
			Phones: []string{},
		},
	}
	if strings.TrimSpace(rawText) == "" {
		return result
	}

	// 页眉页脚先剥离，章节切分依赖剥离后的行结构
	stripped := parser.StripHeaderFooter(rawText)
	clean := parser.CleanText(stripped)

	result.RawText = rawText
	result.CleanText = clean
	result.Contact = parser.ExtractContactInfo(clean)

	sections := parser.SplitResumeSections(stripped)
	result.Sections = sections

	skillsText := sections.GetAny("skills", "technical skills")
	result.Skills = p.extractSkillCandidates(skillsText, clean)

	result.Experience = p.experienceText(sections, clean)
	result.Education = sections.GetAny("education")
	result.Projects = sections.GetAny("projects")
	result.Summary = p.summaryText(sections, clean)

	p.logger.Debug().
		Strs("sections", sections.Labels()).
		Int("skill_candidates", len(result.Skills)).
		Msg("简历结构化完成")

	return result
}

// extractSkillCandidates 组装技能候选列表
// 技能章节的名词短语在前，全文命中的技术词表词条在后，
// 顺序稳定且去重，总量封顶
func (p *ResumeProcessor) extractSkillCandidates(skillsSection, fullText string) []string {
	ordered := []string{}
	seen := make(map[string]struct{})
	add := func(c string) {
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		ordered = append(ordered, c)
	}

	if skillsSection != "" {
		for _, phrase := range p.splitter.NounPhrases(skillsSection) {
			if len(ordered) >= constants.MaxSkillCandidates {
				break
			}
			if len(phrase) <= 2 || len(phrase) > 60 {
				continue
			}
			if _, generic := genericCandidates[strings.ToLower(phrase)]; generic {
				continue
			}
			add(phrase)
		}
	}

	lower := strings.ToLower(fullText)
	for _, term := range taxonomy.DefaultTechTerms {
		if len(ordered) >= constants.MaxSkillCandidates {
			break
		}
		if strings.Contains(lower, term) {
			add(term)
		}
	}

	return ordered
}

// experienceText 优先取经验章节，缺失时从全文句子里按提示词捞
func (p *ResumeProcessor) experienceText(sections types.SectionMap, clean string) string {
	if text := sections.GetAny("experience", "work experience"); text != "" {
		return text
	}
	var picked []string
	for _, sentence := range p.splitter.SplitSentences(clean) {
		lower := strings.ToLower(sentence)
		for _, hint := range experienceHints {
			if strings.Contains(lower, hint) {
				picked = append(picked, sentence)
				break
			}
		}
		if len(picked) >= constants.MaxExperienceSentences {
			break
		}
	}
	return strings.Join(picked, " ")
}

// summaryText 优先取摘要章节，缺失时退化为全文前几句
func (p *ResumeProcessor) summaryText(sections types.SectionMap, clean string) string {
	if text := sections.GetAny("summary", "professional summary"); text != "" {
		return text
	}
	sentences := p.splitter.SplitSentences(clean)
	if len(sentences) > constants.MaxSummarySentences {
		sentences = sentences[:constants.MaxSummarySentences]
	}
	return strings.Join(sentences, " ")
}
