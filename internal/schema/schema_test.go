package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shipdesk/internal/domain"
)

func TestDefault_Fields(t *testing.T) {
	s := Default()
	assert.Len(t, s.Fields, 34)
	assert.Equal(t, domain.FieldID("office_name"), s.Fields[0])
	assert.Equal(t, FieldNotes, s.Fields[len(s.Fields)-1])
	assert.True(t, s.Has("vessel"))
	assert.False(t, s.Has("vessel_name"))
}

func TestDefault_IsIndependentCopy(t *testing.T) {
	a := Default()
	a.Fields[0] = "changed"
	a.DisplayNames["office_name"] = "changed"

	b := Default()
	assert.Equal(t, domain.FieldID("office_name"), b.Fields[0])
	assert.Equal(t, "Office", b.DisplayName("office_name"))
}

func TestDisplayName(t *testing.T) {
	s := Default()
	assert.Equal(t, "I/E", s.DisplayName("type"))
	assert.Equal(t, "Quick Notes", s.DisplayName("Notes"))
	assert.Equal(t, "Hazmat Class", s.DisplayName("hazmat_class"))
	assert.Equal(t, "Weird  Name", s.DisplayName("weird__name"))
	assert.Equal(t, "École No", s.DisplayName("école_no"))
	assert.Equal(t, "Ärztlich Befund", s.DisplayName("ärztlich_befund"))
}

func TestSourceFields(t *testing.T) {
	s := Default()
	assert.Equal(t, []domain.FieldID{"office_name", "office"}, s.SourceFields("office_name"))
	assert.Equal(t, []domain.FieldID{"vessel"}, s.SourceFields("vessel"))

	s.Aliases["office"] = []domain.FieldID{"branch", "office_name"}
	s.Aliases["branch"] = []domain.FieldID{"depot"}
	assert.Equal(t, []domain.FieldID{"office_name", "office", "branch"}, s.SourceFields("office_name"))
}
