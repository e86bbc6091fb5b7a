package constants

import "time"

const (
	// 匹配评分默认权重
	DefaultSemanticWeight = 0.6
	DefaultKeywordWeight  = 0.4

	// 可解释性输出的句对数量上限
	DefaultTopMatches = 6

	// 岗位工具/技术栈关键词提取数量上限
	DefaultKeywordTopK = 30

	// 简历技能候选词数量上限
	MaxSkillCandidates = 60
	// 岗位名词短语候选数量上限
	MaxNounChunks = 60
	// 经历兜底提取的句子数上限
	MaxExperienceSentences = 8
	// 摘要兜底提取的句子数
	MaxSummarySentences = 2

	// 页眉/页脚启发式检查的行数窗口
	HeaderFooterWindow = 6

	// Redis向量缓存键前缀与过期时间
	UnitVectorCachePrefix   = "match:unit_vec:"
	UnitVectorCacheDuration = 24 * time.Hour
)
