// Package observability provides human-readable CLI output for analysis
// results and resume documents.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// scoreBarWidth is the number of cells in the match score bar
	scoreBarWidth = 20
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes; %-*s pads by bytes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

// scoreBar renders score (0-100) as a fixed-width bar.
func scoreBar(score int) string {
	filled := score * scoreBarWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled) + "]"
}

// PrintAnalysis outputs the match score, missing keywords and summary.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:  %s %d%%\n\n", scoreBar(result.MatchScore), result.MatchScore))

	if len(result.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Missing keywords (%d):\n", len(result.MissingKeywords)))
		for _, kw := range result.MissingKeywords {
			sb.WriteString(fmt.Sprintf("  • %s\n", kw))
		}
	} else {
		sb.WriteString("Missing keywords: none\n")
	}

	sb.WriteString("\nSummary:\n")
	for _, line := range wrap(result.ProfileSummary, boxWidth-6) {
		sb.WriteString("  " + line + "\n")
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a short overview of a canonical resume.
func (p *Printer) PrintDocument(title string, doc types.Document) {
	var sb strings.Builder

	info := doc.PersonalInformation
	name := info.FullName
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if info.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	}
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", info.Location))
	}

	if doc.Summary != "" {
		sb.WriteString("\n")
		for _, line := range wrap(doc.Summary, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			line := exp.JobTitle
			if exp.Company != "" {
				line += " @ " + exp.Company
			}
			if exp.Duration != "" {
				line += " (" + exp.Duration + ")"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", strings.TrimSpace(line)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	if len(doc.Skills) > 0 {
		titles := make([]string, 0, len(doc.Skills))
		for _, s := range doc.Skills {
			if s.Title != "" {
				titles = append(titles, s.Title)
			}
		}
		sb.WriteString("\nSkills:\n")
		for _, line := range wrap(strings.Join(titles, ", "), boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\nSections: %d education, %d projects, %d certifications, %d achievements",
		len(doc.Education), len(doc.Projects), len(doc.Certifications), len(doc.Achievements)))

	if title == "" {
		title = types.UntitledResume
	}
	p.printBox(strings.ToUpper(title), sb.String())
}
