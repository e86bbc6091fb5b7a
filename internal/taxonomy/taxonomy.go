package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrTaxonomyLoad 技能词典加载失败，启动阶段致命
var ErrTaxonomyLoad = errors.New("技能词典加载失败")

// DefaultTechTerms 精选的技术词表，用于识别候选关键词中的工具/技术项
var DefaultTechTerms = []string{
	"python", "java", "javascript", "react", "node", "django", "flask", "swift", "kotlin", "flutter",
	"aws", "azure", "gcp", "docker", "kubernetes", "sql", "postgresql", "mongodb", "pytorch", "tensorflow",
	"nlp", "spark", "hadoop", "git", "ci/cd", "rest api", "graphql", "microservices", "linux",
}

// skillsFile 硬技能词典与软技能列表的文件结构
type skillsFile struct {
	HardSkills map[string][]string `json:"hard_skills"`
	SoftSkills []string            `json:"soft_skills"`
}

// regionEntry 地区词典中单个领域的条目
type regionEntry struct {
	Skills []string `json:"Skills"`
	Tools  []string `json:"Tools"`
	Cloud  []string `json:"Cloud"`
}

// Taxonomy 进程级只读技能词典
// 启动时加载一次，之后仅做并发读，不再修改
type Taxonomy struct {
	hardByCategory map[string][]string

	hard       map[string]struct{} // 通用硬技能 ∪ 地区硬技能
	soft       map[string]struct{}
	regionHard map[string]struct{} // 仅地区词典的硬技能，用于缺失技能分桶
	tools      map[string]struct{}
	cloud      map[string]struct{}

	hardTerms []string // 排序后的词条列表，用于全文子串扫描
	softTerms []string
}

// Normalize 技能词条的统一规范化：去除首尾空白并转小写
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Load 从词典文件构建Taxonomy
// 任一文件缺失或格式错误都返回包装了ErrTaxonomyLoad的错误，调用方应视为致命
func Load(skillsPath, regionPath string) (*Taxonomy, error) {
	t := &Taxonomy{
		hardByCategory: make(map[string][]string),
		hard:           make(map[string]struct{}),
		soft:           make(map[string]struct{}),
		regionHard:     make(map[string]struct{}),
		tools:          make(map[string]struct{}),
		cloud:          make(map[string]struct{}),
	}

	data, err := os.ReadFile(skillsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取 '%s': %v", ErrTaxonomyLoad, skillsPath, err)
	}
	var skills skillsFile
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("%w: 解析 '%s': %v", ErrTaxonomyLoad, skillsPath, err)
	}
	if len(skills.HardSkills) == 0 || len(skills.SoftSkills) == 0 {
		return nil, fmt.Errorf("%w: '%s' 中词条为空", ErrTaxonomyLoad, skillsPath)
	}

	for category, terms := range skills.HardSkills {
		normalized := make([]string, 0, len(terms))
		for _, term := range terms {
			n := Normalize(term)
			if n == "" {
				continue
			}
			normalized = append(normalized, n)
			t.hard[n] = struct{}{}
		}
		t.hardByCategory[category] = normalized
	}
	for _, term := range skills.SoftSkills {
		if n := Normalize(term); n != "" {
			t.soft[n] = struct{}{}
		}
	}

	regionData, err := os.ReadFile(regionPath)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取 '%s': %v", ErrTaxonomyLoad, regionPath, err)
	}
	var region map[string]regionEntry
	if err := json.Unmarshal(regionData, &region); err != nil {
		return nil, fmt.Errorf("%w: 解析 '%s': %v", ErrTaxonomyLoad, regionPath, err)
	}
	if len(region) == 0 {
		return nil, fmt.Errorf("%w: '%s' 中没有任何领域", ErrTaxonomyLoad, regionPath)
	}

	for _, entry := range region {
		for _, term := range entry.Skills {
			if n := Normalize(term); n != "" {
				t.regionHard[n] = struct{}{}
				t.hard[n] = struct{}{}
			}
		}
		for _, term := range entry.Tools {
			if n := Normalize(term); n != "" {
				t.tools[n] = struct{}{}
			}
		}
		for _, term := range entry.Cloud {
			if n := Normalize(term); n != "" {
				t.cloud[n] = struct{}{}
			}
		}
	}

	t.hardTerms = sortedKeys(t.hard)
	t.softTerms = sortedKeys(t.soft)

	return t, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsHard 判断是否为硬技能（通用词典∪地区词典）
func (t *Taxonomy) IsHard(term string) bool {
	_, ok := t.hard[Normalize(term)]
	return ok
}

// IsSoft 判断是否为软技能
func (t *Taxonomy) IsSoft(term string) bool {
	_, ok := t.soft[Normalize(term)]
	return ok
}

// IsRegionHard 判断是否为地区词典中的硬技能
func (t *Taxonomy) IsRegionHard(term string) bool {
	_, ok := t.regionHard[Normalize(term)]
	return ok
}

// IsTool 判断是否为地区词典中的工具类技能
func (t *Taxonomy) IsTool(term string) bool {
	_, ok := t.tools[Normalize(term)]
	return ok
}

// IsCloud 判断是否为地区词典中的云技能
func (t *Taxonomy) IsCloud(term string) bool {
	_, ok := t.cloud[Normalize(term)]
	return ok
}

// HardTerms 返回排序后的全部硬技能词条
func (t *Taxonomy) HardTerms() []string {
	return t.hardTerms
}

// SoftTerms 返回排序后的全部软技能词条
func (t *Taxonomy) SoftTerms() []string {
	return t.softTerms
}

// HardCategories 返回硬技能的分类视图
func (t *Taxonomy) HardCategories() map[string][]string {
	return t.hardByCategory
}
