package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripHeaderFooter(t *testing.T) {
	t.Run("页眉页脚同时剥离", func(t *testing.T) {
		text := strings.Join([]string{
			"John Smith",
			"john.smith@example.com",
			"Seasoned software engineer building distributed backend services daily",
			"Designed resilient streaming pipelines handling billions of events reliably",
			"Mentored junior engineers across multiple product teams every quarter",
			"Delivered measurable latency improvements for customer facing workloads consistently",
			"Confidential resume",
			"Page 1 of 2",
		}, "\n")

		result := StripHeaderFooter(text)
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 4, "应剥离2行页眉与2行页脚")
		assert.True(t, strings.HasPrefix(lines[0], "Seasoned"), "正文首行应保留")
		assert.False(t, strings.Contains(result, "Page 1"), "页码行应被剥离")
	})

	t.Run("单行疑似页眉不剥离", func(t *testing.T) {
		text := "Short line\nFollowed by a much longer line of many words here indeed"
		assert.Contains(t, StripHeaderFooter(text), "Short line", "疑似行不足2行时不应剥离")
	})

	t.Run("空输入返回空串", func(t *testing.T) {
		assert.Equal(t, "", StripHeaderFooter(""))
		assert.Equal(t, "", StripHeaderFooter("\n\n  \n"))
	})
}

func TestSplitResumeSections(t *testing.T) {
	t.Run("按标题词表切分", func(t *testing.T) {
		text := strings.Join([]string{
			"Summary",
			"Dedicated backend developer focused on reliability",
			"Skills",
			"Python, Go, Docker",
			"Experience",
			"Built payment services at a fintech startup",
		}, "\n")

		sections := SplitResumeSections(text)
		require.Len(t, sections, 3, "应切出3个章节")
		assert.Equal(t, "Dedicated backend developer focused on reliability", sections.GetAny("summary"))
		assert.Equal(t, "Python, Go, Docker", sections.GetAny("skills"))
		assert.Equal(t, "Built payment services at a fintech startup", sections.GetAny("experience"))
	})

	t.Run("同名章节内容合并", func(t *testing.T) {
		text := "Skills\nGo\nExperience\nShipped things to production\nSkills\nKubernetes"
		sections := SplitResumeSections(text)
		assert.Equal(t, "Go\nKubernetes", sections.GetAny("skills"), "同标题章节应以换行合并")
	})

	t.Run("无标题时整体归入content", func(t *testing.T) {
		sections := SplitResumeSections("plain paragraph without any recognizable headings")
		require.Len(t, sections, 1)
		assert.Equal(t, "content", sections[0].Label)
		assert.Equal(t, "plain paragraph without any recognizable headings", sections[0].Content)
	})
}

func TestSplitJobSections(t *testing.T) {
	t.Run("标题行原样作为标签", func(t *testing.T) {
		text := strings.Join([]string{
			"We need a backend engineer.",
			"Requirements:",
			"5+ years with Go",
			"Solid SQL background",
			"Comfortable with Docker deployments",
		}, "\n")

		sections := SplitJobSections(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "Requirements:", sections[0].Label, "标题行去除首尾空白后应原样作为标签")
		assert.Equal(t, "5+ years with Go Solid SQL background Comfortable with Docker deployments", sections[0].Content, "章节内容应以空格连接")
	})

	t.Run("无标题时按段落合并为description", func(t *testing.T) {
		text := "First paragraph about the role\n\nSecond paragraph about the team"
		sections := SplitJobSections(text)
		require.Len(t, sections, 1)
		assert.Equal(t, "description", sections[0].Label)
		assert.Equal(t, "First paragraph about the role Second paragraph about the team", sections[0].Content)
	})
}

func TestExtractContactInfo(t *testing.T) {
	t.Run("提取并去重", func(t *testing.T) {
		text := "Reach jane.doe@example.com or jane.doe@example.com, phone +971 50 123 4567"
		info := ExtractContactInfo(text)
		assert.Equal(t, []string{"jane.doe@example.com"}, info.Emails, "重复邮箱应去重")
		require.NotEmpty(t, info.Phones)
		assert.Contains(t, info.Phones[0], "971", "应提取到电话号码")
	})

	t.Run("无联系方式返回空集合", func(t *testing.T) {
		info := ExtractContactInfo("no contact details here")
		assert.NotNil(t, info.Emails)
		assert.NotNil(t, info.Phones)
		assert.Empty(t, info.Emails)
		assert.Empty(t, info.Phones)
	})
}
