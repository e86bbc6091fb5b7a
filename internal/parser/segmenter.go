package parser

import (
	"regexp"
	"sort"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[\s-])?(\(?\d{2,4}\)?[\s-]?)?\d{3,4}[\s-]?\d{3,4}`)
)

// ResumeSectionHeaders 简历章节标题词表，按行前缀匹配（忽略大小写）
// 顺序即匹配优先级
var ResumeSectionHeaders = []string{
	"summary", "professional summary", "experience", "work experience", "employment history",
	"education", "skills", "technical skills", "projects", "certifications", "achievements",
	"publications", "interests", "contact", "objective",
}

// jobHeaderKeywords 岗位描述章节标题的识别关键词，按行包含匹配
var jobHeaderKeywords = []string{
	"responsibil", "requirement", "qualification", "skill",
	"what you'll", "what you will", "you will", "you are",
}

// StripHeaderFooter 启发式去除页眉页脚
// 检查开头的前6个非空行：包含邮箱、电话或词数≤5的行视为页眉行，
// 达到2行及以上时丢弃相应数量的开头行；结尾对称处理页脚
// （包含"page"加数字，或词数≤4）。不足6行时按实际行数检查，不报错
func StripHeaderFooter(text string) string {
	if text == "" {
		return ""
	}

	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	top := min(constants.HeaderFooterWindow, len(lines))
	headerCount := 0
	for _, ln := range lines[:top] {
		if emailPattern.MatchString(ln) || phonePattern.MatchString(ln) || len(strings.Fields(ln)) <= 5 {
			headerCount++
		}
	}
	if headerCount >= 2 {
		lines = lines[headerCount:]
	}

	bottom := min(constants.HeaderFooterWindow, len(lines))
	footerCount := 0
	for _, ln := range lines[len(lines)-bottom:] {
		if isFooterLike(ln) {
			footerCount++
		}
	}
	if footerCount >= 2 {
		lines = lines[:len(lines)-footerCount]
	}

	return strings.Join(lines, "\n")
}

func isFooterLike(line string) bool {
	if strings.Contains(strings.ToLower(line), "page") && strings.ContainsAny(line, "0123456789") {
		return true
	}
	return len(strings.Fields(line)) <= 4
}

// SplitResumeSections 按标题词表切分简历章节
// 标题行的下一行到下一个标题行（或文档结尾）之间的内容归属该章节；
// 未识别到任何标题时整个文档作为单个"content"章节返回
func SplitResumeSections(text string) types.SectionMap {
	lines := strings.Split(text, "\n")

	type headerPos struct {
		idx    int
		header string
	}
	var positions []headerPos
	for idx, ln := range lines {
		lnLow := strings.ToLower(strings.TrimSpace(ln))
		for _, h := range ResumeSectionHeaders {
			if strings.HasPrefix(lnLow, h) {
				positions = append(positions, headerPos{idx: idx, header: h})
				break
			}
		}
	}

	if len(positions) == 0 {
		return types.SectionMap{{Label: "content", Content: strings.TrimSpace(text)}}
	}

	var sections types.SectionMap
	for i, pos := range positions {
		start := pos.idx + 1
		end := len(lines)
		if i+1 < len(positions) {
			end = positions[i+1].idx
		}
		content := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		sections = sections.Append(pos.header, content)
	}
	return sections
}

// SplitJobSections 按关键词识别岗位描述的章节标题行
// 标题行本身（去除首尾空白）作为章节标签；章节内容以空格连接；
// 未识别到标题时按空行切分段落，合并为单个"description"章节
func SplitJobSections(text string) types.SectionMap {
	lines := strings.Split(text, "\n")

	type headerPos struct {
		idx   int
		label string
	}
	var positions []headerPos
	for idx, ln := range lines {
		lnLow := strings.ToLower(strings.TrimSpace(ln))
		for _, kw := range jobHeaderKeywords {
			if strings.Contains(lnLow, kw) {
				positions = append(positions, headerPos{idx: idx, label: strings.TrimSpace(ln)})
				break
			}
		}
	}

	if len(positions) == 0 {
		var paras []string
		for _, p := range strings.Split(text, "\n\n") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				paras = append(paras, trimmed)
			}
		}
		return types.SectionMap{{Label: "description", Content: strings.Join(paras, " ")}}
	}

	var sections types.SectionMap
	for i, pos := range positions {
		start := pos.idx + 1
		end := len(lines)
		if i+1 < len(positions) {
			end = positions[i+1].idx
		}
		content := strings.TrimSpace(strings.Join(trimAll(lines[start:end]), " "))
		sections = sections.Append(pos.label, content)
	}
	return sections
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = strings.TrimSpace(ln)
	}
	return out
}

// ExtractContactInfo 从规范化文本中提取邮箱与电话
// 无匹配时返回空集合而非错误
func ExtractContactInfo(text string) types.ContactInfo {
	info := types.ContactInfo{Emails: []string{}, Phones: []string{}}

	info.Emails = dedupeSorted(emailPattern.FindAllString(text, -1))

	var phones []string
	for _, p := range phonePattern.FindAllString(text, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			phones = append(phones, trimmed)
		}
	}
	info.Phones = dedupeSorted(phones)

	return info
}

func dedupeSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
