package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		MatchScore:      75,
		MissingKeywords: []string{"Kubernetes", "Terraform"},
		ProfileSummary:  "Strong backend experience. Add infrastructure as code work to close the gap with the role.",
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "75%")
	assert.Contains(t, output, "Missing keywords (2)")
	assert.Contains(t, output, "• Kubernetes")
	assert.Contains(t, output, "Strong backend experience.")
	assert.Contains(t, output, "close the gap")
}

func TestPrintAnalysis_NoKeywords(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(&types.AnalysisResult{MatchScore: 100, ProfileSummary: types.NoSummaryAvailable})

	assert.Contains(t, buf.String(), "Missing keywords: none")
	assert.Contains(t, buf.String(), "["+strings.Repeat("█", scoreBarWidth)+"]")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := types.EmptyDocument()
	doc.PersonalInformation.FullName = "Jane Doe"
	doc.PersonalInformation.Email = "jane@example.com"
	doc.Summary = "Engineer"
	doc.Skills = []types.Skill{{Title: "Go"}, {Title: "SQL"}}
	for i := 0; i < 7; i++ {
		doc.Experience = append(doc.Experience, types.Experience{JobTitle: "Engineer", Company: "Acme"})
	}

	p.PrintDocument("Jane Doe's Resume", doc)
	output := buf.String()

	assert.Contains(t, output, "JANE DOE'S RESUME")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Go, SQL")
}

func TestPrintDocument_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument("", types.EmptyDocument())

	assert.Contains(t, buf.String(), strings.ToUpper(types.UntitledResume))
	assert.Contains(t, buf.String(), "(no name)")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"a", "", "b"}, wrap("a\n\nb", 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
