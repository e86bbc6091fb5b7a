package types

// NormalizedDocument 原始文本与规范化文本的组合
// Clean 为折叠空白、去除标记/emoji、ASCII折叠后的文本
type NormalizedDocument struct {
	Raw   string `json:"raw"`
	Clean string `json:"clean"`
}

// Section 文档中的一个章节，Label 为识别到的章节标题词
type Section struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// SectionMap 有序的章节集合，顺序跟随章节在文档中的首次出现顺序
// 不使用 map 以保证插入顺序可复现
type SectionMap []Section

// Get 返回指定标签的章节内容，未找到时返回空串和 false
func (m SectionMap) Get(label string) (string, bool) {
	for _, s := range m {
		if s.Label == label {
			return s.Content, true
		}
	}
	return "", false
}

// GetAny 按给定顺序尝试多个标签，返回第一个命中的内容
func (m SectionMap) GetAny(labels ...string) string {
	for _, label := range labels {
		if content, ok := m.Get(label); ok && content != "" {
			return content
		}
	}
	return ""
}

// Labels 返回全部章节标签（保持顺序）
func (m SectionMap) Labels() []string {
	labels := make([]string, 0, len(m))
	for _, s := range m {
		labels = append(labels, s.Label)
	}
	return labels
}

// Append 追加内容；同名章节已存在时合并到已有章节（保持首次出现位置）
func (m SectionMap) Append(label, content string) SectionMap {
	for i, s := range m {
		if s.Label == label {
			if content != "" {
				if s.Content != "" {
					m[i].Content = s.Content + "\n" + content
				} else {
					m[i].Content = content
				}
			}
			return m
		}
	}
	return append(m, Section{Label: label, Content: content})
}

// ContactInfo 联系方式，去重后排序的集合
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// ParsedResume 结构化简历解析结果
type ParsedResume struct {
	RawText    string      `json:"raw_text"`
	CleanText  string      `json:"clean_text"`
	Contact    ContactInfo `json:"contact"`
	Summary    string      `json:"summary"`
	Skills     []string    `json:"skills"`
	Experience string      `json:"experience"`
	Education  string      `json:"education"`
	Projects   string      `json:"projects"`
	Sections   SectionMap  `json:"sections_raw"`
}

// ParsedJob 岗位描述解析结果
type ParsedJob struct {
	RawText          string     `json:"raw_text"`
	CleanText        string     `json:"clean_text"`
	Sections         SectionMap `json:"sections"`
	Responsibilities string     `json:"responsibilities"`
	Requirements     string     `json:"requirements"`
	ToolsAndTech     []string   `json:"tools_and_tech"`
	NounChunks       []string   `json:"noun_chunks"`
}
