package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingSkillDetector(t *testing.T) {
	tax := loadTestTaxonomy(t)
	d := NewMissingSkillDetector(tax)

	t.Run("缺失技能按规则分桶", func(t *testing.T) {
		report := d.Detect(
			[]string{"python", "git"},
			[]string{"swift", "swiftui", "aws", "git", "rest api"},
		)

		assert.ElementsMatch(t, []string{"swift", "swiftui", "rest api"}, report.MissingHard,
			"区域硬技能与未知词条都应落入硬技能桶")
		assert.Equal(t, []string{"aws"}, report.MissingCloud, "云平台词应落入云桶")
		assert.Empty(t, report.MissingTools)
		assert.Equal(t, []string{"git"}, report.Matched)
	})

	t.Run("工具桶优先于默认硬技能桶", func(t *testing.T) {
		report := d.Detect(nil, []string{"docker"})
		assert.Equal(t, []string{"docker"}, report.MissingTools,
			"docker 同时在硬技能与工具词典中，应按规则顺序落入工具桶")
		assert.Empty(t, report.MissingHard)
	})

	t.Run("建议按固定顺序生成", func(t *testing.T) {
		report := d.Detect(nil, []string{"aws", "docker", "swift", "teamwork"})
		require.Len(t, report.Tips, 4)
		assert.Equal(t, "Cloud skills like AWS or Azure are strongly preferred in Dubai.", report.Tips[0])
		assert.Equal(t, "Consider learning tools such as Docker or Kubernetes.", report.Tips[1])
		assert.Equal(t, "Strengthen your core technical stack for better match.", report.Tips[2])
		assert.Equal(t, "Dubai recruiters value soft skills such as communication.", report.Tips[3])
	})

	t.Run("比较前做大小写与空格归一", func(t *testing.T) {
		report := d.Detect([]string{"  Python "}, []string{"PYTHON"})
		assert.Equal(t, []string{"python"}, report.Matched)
		assert.Empty(t, report.MissingHard)
	})

	t.Run("全部匹配时无缺失无建议", func(t *testing.T) {
		report := d.Detect([]string{"python"}, []string{"python"})
		assert.Empty(t, report.MissingHard)
		assert.Empty(t, report.Tips)
		assert.NotNil(t, report.Tips, "建议列表应为空切片而非nil")
	})
}
