package canonical

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// resumeSuffix is appended to the owner's name to build a save title.
const resumeSuffix = "'s Resume"

// FromRecord returns the display title and canonical content of a stored resume.
func FromRecord(rec types.ResumeRecord) (string, types.Document) {
	title := rec.Title
	if title == "" {
		title = types.UntitledResume
	}
	if len(rec.Content) == 0 {
		return title, types.EmptyDocument()
	}
	return title, Canonicalize(json.RawMessage(rec.Content))
}

// ResumeTitle builds the title a resume is saved under: the explicit title,
// else the owner's full name, with "'s Resume" appended. Titles that already
// carry the suffix are kept as-is so repeated saves do not stack it.
func ResumeTitle(title, fullName string) string {
	name := title
	if name == "" {
		name = fullName
	}
	if name == "" {
		return types.UntitledResume
	}
	if name == types.UntitledResume || strings.HasSuffix(name, resumeSuffix) {
		return name
	}
	return name + resumeSuffix
}
