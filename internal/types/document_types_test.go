package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionMap(t *testing.T) {
	t.Run("Labels保持首次出现顺序", func(t *testing.T) {
		m := SectionMap{}
		m = m.Append("summary", "a")
		m = m.Append("skills", "b")
		m = m.Append("summary", "c")
		assert.Equal(t, []string{"summary", "skills"}, m.Labels())
	})

	t.Run("同名章节内容换行合并", func(t *testing.T) {
		m := SectionMap{}
		m = m.Append("skills", "Go")
		m = m.Append("skills", "SQL")
		content, ok := m.Get("skills")
		assert.True(t, ok)
		assert.Equal(t, "Go\nSQL", content)
	})

	t.Run("GetAny返回首个非空命中", func(t *testing.T) {
		m := SectionMap{{Label: "skills", Content: ""}, {Label: "technical skills", Content: "Python"}}
		assert.Equal(t, "Python", m.GetAny("skills", "technical skills"))
		assert.Equal(t, "", m.GetAny("education"))
	})
}
