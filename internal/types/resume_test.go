package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDocument_MarshalsEveryField(t *testing.T) {
	data, err := json.Marshal(EmptyDocument())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{
		"personalInformation", "summary", "skills", "experience", "education",
		"certifications", "projects", "languages", "interests", "achievements",
	} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, []any{}, m["skills"], "empty lists must marshal as [] not null")

	personal, ok := m["personalInformation"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"fullName", "email", "phoneNumber", "location", "linkedin", "gitHub", "portfolio"} {
		assert.Equal(t, "", personal[key], key)
	}
}

func TestTechnologies_JSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantList bool
		wantJSON string
	}{
		{name: "string form", input: `"Go, Postgres"`, wantList: false, wantJSON: `"Go, Postgres"`},
		{name: "list form", input: `["Go","Postgres"]`, wantList: true, wantJSON: `["Go","Postgres"]`},
		{name: "empty list", input: `[]`, wantList: true, wantJSON: `[]`},
		{name: "null", input: `null`, wantList: false, wantJSON: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tech Technologies
			require.NoError(t, json.Unmarshal([]byte(tt.input), &tech))
			assert.Equal(t, tt.wantList, tech.IsList())

			out, err := json.Marshal(tech)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(out))
		})
	}
}

func TestTechnologies_RejectsObjects(t *testing.T) {
	var tech Technologies
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &tech))
}

func TestTechnologies_ItemsAndString(t *testing.T) {
	assert.Equal(t, []string{"Go", "Redis"}, TechnologiesList("Go", "Redis").Items())
	assert.Equal(t, "Go, Redis", TechnologiesList("Go", "Redis").String())
	assert.Equal(t, []string{"Go and Redis"}, TechnologiesText("Go and Redis").Items())
	assert.Equal(t, []string{}, TechnologiesText("").Items())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := EmptyDocument()
	doc.Skills = append(doc.Skills, Skill{Title: "Go"})
	doc.Projects = append(doc.Projects, Project{Title: "api", TechnologiesUsed: TechnologiesList("Go")})

	clone := doc.Clone()
	clone.Skills[0].Title = "Rust"
	clone.Projects[0].TechnologiesUsed = TechnologiesText("changed")

	assert.Equal(t, "Go", doc.Skills[0].Title)
	assert.True(t, doc.Projects[0].TechnologiesUsed.IsList())
	assert.Equal(t, doc.Projects[0].Title, clone.Projects[0].Title)
}

func TestDocument_CloneOfZeroValueHasEmptyLists(t *testing.T) {
	clone := Document{}.Clone()
	assert.NotNil(t, clone.Skills)
	assert.NotNil(t, clone.Achievements)
	assert.Empty(t, clone.Projects)
}
