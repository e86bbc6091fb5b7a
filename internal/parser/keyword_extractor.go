package parser

import (
	"sort"
	"strings"
)

// Keyword 关键词及其显著性得分
type Keyword struct {
	Term  string
	Score float64
}

// KeywordExtractor 无监督关键词提取协作者接口
// 返回按显著性降序排列的前topK个关键词
type KeywordExtractor interface {
	ExtractKeywords(text string, topK int) []Keyword
}

// FrequencyKeywordExtractor 基于词频与首现位置的轻量实现
// 候选为1~2词的n-gram，得分 = 词频 ×（1 + 首现位置衰减）
type FrequencyKeywordExtractor struct{}

// NewFrequencyKeywordExtractor 创建关键词提取器
func NewFrequencyKeywordExtractor() *FrequencyKeywordExtractor {
	return &FrequencyKeywordExtractor{}
}

type keywordStat struct {
	surface  string // 首次出现时的原始写法，供大小写敏感的后续过滤使用
	count    int
	firstPos int
}

// ExtractKeywords 提取关键词，保留首次出现时的原始大小写
func (e *FrequencyKeywordExtractor) ExtractKeywords(text string, topK int) []Keyword {
	if topK <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	words := tokenize(text)

	stats := make(map[string]*keywordStat)
	order := make([]string, 0, len(words))
	record := func(surface string, pos int) {
		key := strings.ToLower(surface)
		if s, ok := stats[key]; ok {
			s.count++
			return
		}
		stats[key] = &keywordStat{surface: surface, count: 1, firstPos: pos}
		order = append(order, key)
	}

	for i, w := range words {
		if len(w) < 2 || isStopword(w) {
			continue
		}
		record(w, i)
		if i+1 < len(words) && len(words[i+1]) >= 2 && !isStopword(words[i+1]) {
			record(w+" "+words[i+1], i)
		}
	}

	keywords := make([]Keyword, 0, len(order))
	for _, key := range order {
		s := stats[key]
		score := float64(s.count) * (1.0 + 1.0/float64(1+s.firstPos))
		keywords = append(keywords, Keyword{Term: s.surface, Score: score})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if len(keywords) > topK {
		keywords = keywords[:topK]
	}
	return keywords
}

func isStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
