package parser

import (
	"strings"
	"unicode"
)

// SentenceSplitter 语言分析协作者接口
// SplitSentences 返回按文档顺序排列的句子序列（有限、可重复调用）；
// NounPhrases 返回名词短语风格的候选词序列，用于技能词典匹配
type SentenceSplitter interface {
	SplitSentences(text string) []string
	NounPhrases(text string) []string
}

// HeuristicSplitter 基于标点与n-gram的启发式实现
// 不依赖外部语言模型，换行与句末标点都视为句子边界
type HeuristicSplitter struct{}

// NewHeuristicSplitter 创建启发式切分器
func NewHeuristicSplitter() *HeuristicSplitter {
	return &HeuristicSplitter{}
}

// SplitSentences 在句末标点（后跟空白或文本结尾）与换行处切分句子
// 空白句子被过滤掉
func (s *HeuristicSplitter) SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if sentence := strings.TrimSpace(current.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// stopwords 候选短语过滤用的最小停用词表
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "for": {}, "with": {}, "at": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "as": {}, "or": {}, "we": {}, "you": {},
	"our": {}, "your": {}, "their": {}, "this": {}, "that": {},
}

// NounPhrases 生成1~3词的小写n-gram候选短语
// 词条边缘的标点被去除，纯停用词短语被过滤，结果按出现顺序去重
func (s *HeuristicSplitter) NounPhrases(text string) []string {
	words := tokenize(strings.ToLower(text))

	var phrases []string
	seen := make(map[string]struct{})
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(words); i++ {
			phrase := strings.Join(words[i:i+n], " ")
			if len(phrase) < 2 || len(phrase) > 60 {
				continue
			}
			if allStopwords(words[i : i+n]) {
				continue
			}
			if _, ok := seen[phrase]; ok {
				continue
			}
			seen[phrase] = struct{}{}
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

func allStopwords(words []string) bool {
	for _, w := range words {
		if _, ok := stopwords[w]; !ok {
			return false
		}
	}
	return true
}

// tokenize 按空白切词并去除词条边缘的标点
// 词内的 . / + # - 保留，以免破坏 ci/cd、next.js、c++ 这类词条
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) && r != '+' && r != '#'
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
