package processor

import (
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

// 缺失技能桶
const (
	bucketHard  = "hard"
	bucketSoft  = "soft"
	bucketTools = "tools"
	bucketCloud = "cloud"
)

// missingSkillRule 分类规则：第一条命中的规则决定归属桶
type missingSkillRule struct {
	bucket string
	match  func(term string) bool
}

// MissingSkillDetector 对"岗位要求但简历缺失"的技能做差集与分桶，
// 并按桶生成固定顺序的提升建议
// 分桶依据区域画像词典：云平台与工具词独立成桶，其余倾向硬技能
type MissingSkillDetector struct {
	rules []missingSkillRule
}

// NewMissingSkillDetector 创建缺失技能分析器
// 规则按序求值：区域硬技能 > 软技能 > 工具 > 云平台 > 默认硬技能
// 顺序不可调换，例如 docker 同时出现在通用硬技能与工具词典中，
// 必须先于默认规则被工具规则捕获
func NewMissingSkillDetector(tax *taxonomy.Taxonomy) *MissingSkillDetector {
	return &MissingSkillDetector{
		rules: []missingSkillRule{
			{bucket: bucketHard, match: tax.IsRegionHard},
			{bucket: bucketSoft, match: tax.IsSoft},
			{bucket: bucketTools, match: tax.IsTool},
			{bucket: bucketCloud, match: tax.IsCloud},
			{bucket: bucketHard, match: func(string) bool { return true }},
		},
	}
}

// Detect 计算缺失/已匹配技能并生成建议
// 两侧输入先做小写去空格归一，比较基于归一后的精确集合运算
func (d *MissingSkillDetector) Detect(resumeSkills, jobRequired []string) *types.MissingSkillsReport {
	resumeSet := normalizeSet(resumeSkills)
	jobSet := normalizeSet(jobRequired)

	buckets := map[string]map[string]struct{}{
		bucketHard:  {},
		bucketSoft:  {},
		bucketTools: {},
		bucketCloud: {},
	}
	matched := make(map[string]struct{})

	for skill := range jobSet {
		if _, ok := resumeSet[skill]; ok {
			matched[skill] = struct{}{}
			continue
		}
		d.classify(skill, buckets)
	}

	report := &types.MissingSkillsReport{
		MissingHard:  sortedSlice(buckets[bucketHard]),
		MissingSoft:  sortedSlice(buckets[bucketSoft]),
		MissingTools: sortedSlice(buckets[bucketTools]),
		MissingCloud: sortedSlice(buckets[bucketCloud]),
		Matched:      sortedSlice(matched),
		Tips:         []string{},
	}
	report.Tips = buildTips(report)
	return report
}

func (d *MissingSkillDetector) classify(skill string, buckets map[string]map[string]struct{}) {
	for _, rule := range d.rules {
		if rule.match(skill) {
			buckets[rule.bucket][skill] = struct{}{}
			return
		}
	}
}

// buildTips 按固定顺序生成建议：云 > 工具 > 硬技能 > 软技能
// 每类缺失至多产生一条，全部匹配时返回空列表
func buildTips(report *types.MissingSkillsReport) []string {
	tips := []string{}
	if len(report.MissingCloud) > 0 {
		tips = append(tips, "Cloud skills like AWS or Azure are strongly preferred in Dubai.")
	}
	if len(report.MissingTools) > 0 {
		tips = append(tips, "Consider learning tools such as Docker or Kubernetes.")
	}
	if len(report.MissingHard) > 0 {
		tips = append(tips, "Strengthen your core technical stack for better match.")
	}
	if len(report.MissingSoft) > 0 {
		tips = append(tips, "Dubai recruiters value soft skills such as communication.")
	}
	return tips
}

func normalizeSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := taxonomy.Normalize(s)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}
