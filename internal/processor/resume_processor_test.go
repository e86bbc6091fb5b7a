package processor

import (
	"strings"
	"testing"

	"resume-match-go/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeProcessor_BuildStructuredResume(t *testing.T) {
	p := NewResumeProcessor(parser.NewHeuristicSplitter())

	text := strings.Join([]string{
		"Summary of profile and career highlights overview",
		"Seasoned backend engineer who enjoys building reliable platforms",
		"Experience with production systems at scale over years",
		"Led migration of python services to kubernetes clusters",
		"Reachable for new opportunities at jane.doe@example.com anytime",
		"Education background and academic credentials earned so far",
		"Graduated with a computer science degree from university",
		"Skills and technologies used daily across many projects",
		"Python, Docker and communication across distributed delivery teams",
	}, "\n")

	resume := p.BuildStructuredResume(text)

	t.Run("章节字段装配", func(t *testing.T) {
		assert.Equal(t, "Seasoned backend engineer who enjoys building reliable platforms", resume.Summary)
		assert.Contains(t, resume.Experience, "Led migration of python services")
		assert.Equal(t, "Graduated with a computer science degree from university", resume.Education)
	})

	t.Run("联系方式", func(t *testing.T) {
		assert.Contains(t, resume.Contact.Emails, "jane.doe@example.com")
	})

	t.Run("技能候选包含技术词表命中", func(t *testing.T) {
		require.NotEmpty(t, resume.Skills)
		assert.Contains(t, resume.Skills, "python")
		assert.Contains(t, resume.Skills, "kubernetes", "全文命中的技术词也应进入候选")
	})

	t.Run("规范化文本无多余空白", func(t *testing.T) {
		assert.NotContains(t, resume.CleanText, "\n")
		assert.Equal(t, resume.CleanText, strings.TrimSpace(resume.CleanText))
	})
}

func TestResumeProcessor_Fallbacks(t *testing.T) {
	p := NewResumeProcessor(parser.NewHeuristicSplitter())

	t.Run("空输入返回空结构体", func(t *testing.T) {
		resume := p.BuildStructuredResume("")
		assert.NotNil(t, resume)
		assert.NotNil(t, resume.Skills)
		assert.Empty(t, resume.Skills)
		assert.Empty(t, resume.Summary)
	})

	t.Run("无章节时摘要退化为开头句子", func(t *testing.T) {
		text := "Backend developer building payment systems. Shipped many projects over the years. One more sentence here."
		resume := p.BuildStructuredResume(text)
		assert.Contains(t, resume.Summary, "Backend developer building payment systems.")
		assert.NotContains(t, resume.Summary, "One more sentence", "摘要退化时只取开头两句")
	})

	t.Run("无经验章节时按提示词捞句子", func(t *testing.T) {
		text := "Worked on search infrastructure for seven years straight. Enjoys gardening at weekends quietly."
		resume := p.BuildStructuredResume(text)
		assert.Contains(t, resume.Experience, "Worked on search infrastructure")
		assert.NotContains(t, resume.Experience, "gardening")
	})
}
