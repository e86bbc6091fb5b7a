package types

// SkillSet 技能抽取结果，硬技能与软技能分开，已去重排序
type SkillSet struct {
	Hard []string `json:"hard_skills"`
	Soft []string `json:"soft_skills"`
}

// All 返回硬技能与软技能的合并列表
func (s SkillSet) All() []string {
	all := make([]string, 0, len(s.Hard)+len(s.Soft))
	all = append(all, s.Hard...)
	all = append(all, s.Soft...)
	return all
}

// MissingSkillsReport 缺失技能分析报告
// 四个 missing 桶两两不相交；missing ∪ matched = 规范化后的岗位要求技能集
type MissingSkillsReport struct {
	MissingHard  []string `json:"missing_hard_skills"`
	MissingSoft  []string `json:"missing_soft_skills"`
	MissingTools []string `json:"missing_tools"`
	MissingCloud []string `json:"missing_cloud"`
	Matched      []string `json:"matched_skills"`
	Tips         []string `json:"improvement_tips"`
}

// TopMatch 一对最佳匹配的句子片段及其余弦相似度（已映射到 [0,1]）
type TopMatch struct {
	ResumeSnippet string  `json:"resume_snippet"`
	JobSnippet    string  `json:"job_snippet"`
	Cosine        float64 `json:"cosine"`
}

// MatchWeights 评分权重，不强制要求和为1
type MatchWeights struct {
	Semantic float64 `json:"semantic"`
	Keyword  float64 `json:"keyword"`
}

// MatchMeta 匹配过程的统计信息
type MatchMeta struct {
	ResumeSentences int `json:"resume_sentences"`
	JobSentences    int `json:"job_sentences"`
}

// MatchReport 简历与岗位的匹配报告
type MatchReport struct {
	SemanticSim  float64      `json:"semantic_sim"`
	KeywordRatio float64      `json:"keyword_ratio"`
	FinalScore   float64      `json:"final_score"`
	Weights      MatchWeights `json:"weights"`
	TopMatches   []TopMatch   `json:"top_matches"`
	Meta         MatchMeta    `json:"meta"`
}
