package parser

import (
	"regexp"
	"strings"
)

var (
	// HTML风格标签
	tagPattern = regexp.MustCompile(`<[^>]+>`)
	// 常见emoji码点区间：表情、符号图形、交通符号、区域指示符
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// CleanText 文本规范化：去除标签、emoji，ASCII折叠，折叠空白并去除首尾空白
// 幂等：对已规范化的文本再次调用返回原值；空输入返回空串，不报错
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = tagPattern.ReplaceAllString(text, " ")
	text = emojiPattern.ReplaceAllString(text, "")
	text = foldASCII(text)
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// foldASCII 丢弃非ASCII字符，复制粘贴简历中常见的乱码由此清除
func foldASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
