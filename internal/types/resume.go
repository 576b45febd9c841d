// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the canonical resume consumed by the form and PDF layers.
// Every field is always present; lists are never nil.
type Document struct {
	PersonalInformation PersonalInformation `json:"personalInformation"`
	Summary             string              `json:"summary"`
	Skills              []Skill             `json:"skills"`
	Experience          []Experience        `json:"experience"`
	Education           []Education         `json:"education"`
	Certifications      []Certification     `json:"certifications"`
	Projects            []Project           `json:"projects"`
	Languages           []Language          `json:"languages"`
	Interests           []Interest          `json:"interests"`
	Achievements        []Achievement       `json:"achievements"`
}

// PersonalInformation holds the contact block at the top of a resume
type PersonalInformation struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"gitHub"`
	Portfolio   string `json:"portfolio"`
}

// Skill is a named skill with an optional proficiency level
type Skill struct {
	Title string `json:"title"`
	Level string `json:"level"`
}

// Experience is a single work history entry
type Experience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single degree entry. Marks keeps its capitalized key for
// compatibility with stored records.
type Education struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	Marks          string `json:"Marks"`
	Location       string `json:"location"`
	GraduationYear string `json:"graduationYear"`
}

// Certification is a certificate with its issuer
type Certification struct {
	Title               string `json:"title"`
	IssuingOrganization string `json:"issuingOrganization"`
	Year                string `json:"year"`
}

// Project is a portfolio project. LiveLink keeps its capitalized key for
// compatibility with stored records.
type Project struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	TechnologiesUsed Technologies `json:"technologiesUsed"`
	GithubLink       string       `json:"githubLink"`
	LiveLink         string       `json:"LiveLink"`
}

// Language is a spoken language
type Language struct {
	Name string `json:"name"`
}

// Interest is a personal interest
type Interest struct {
	Name string `json:"name"`
}

// Achievement is an award or notable accomplishment
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// EmptyDocument returns a fresh document with every field at its default.
func EmptyDocument() Document {
	return Document{
		Skills:         []Skill{},
		Experience:     []Experience{},
		Education:      []Education{},
		Certifications: []Certification{},
		Projects:       []Project{},
		Languages:      []Language{},
		Interests:      []Interest{},
		Achievements:   []Achievement{},
	}
}

// Clone returns a deep copy of the document. Nil lists in the receiver come
// back as empty lists.
func (d Document) Clone() Document {
	out := EmptyDocument()
	out.PersonalInformation = d.PersonalInformation
	out.Summary = d.Summary
	out.Skills = append(out.Skills, d.Skills...)
	out.Experience = append(out.Experience, d.Experience...)
	out.Education = append(out.Education, d.Education...)
	out.Certifications = append(out.Certifications, d.Certifications...)
	for _, p := range d.Projects {
		p.TechnologiesUsed = p.TechnologiesUsed.clone()
		out.Projects = append(out.Projects, p)
	}
	out.Languages = append(out.Languages, d.Languages...)
	out.Interests = append(out.Interests, d.Interests...)
	out.Achievements = append(out.Achievements, d.Achievements...)
	return out
}

// Technologies is the technologiesUsed value of a project. Generators emit it
// either as a single string ("Go, Postgres") or as a list of strings, and both
// forms are kept as-is.
type Technologies struct {
	text   string
	items  []string
	isList bool
}

// TechnologiesText returns the string form.
func TechnologiesText(s string) Technologies {
	return Technologies{text: s}
}

// TechnologiesList returns the list form. A nil slice is stored as an empty list.
func TechnologiesList(items ...string) Technologies {
	out := make([]string, 0, len(items))
	out = append(out, items...)
	return Technologies{items: out, isList: true}
}

// IsList reports whether the value is in list form.
func (t Technologies) IsList() bool {
	return t.isList
}

// Items returns the entries in list form, or the text as a single entry when
// it is non-empty.
func (t Technologies) Items() []string {
	if t.isList {
		return append([]string{}, t.items...)
	}
	if t.text == "" {
		return []string{}
	}
	return []string{t.text}
}

// String joins list entries with ", ".
func (t Technologies) String() string {
	if t.isList {
		return strings.Join(t.items, ", ")
	}
	return t.text
}

func (t Technologies) clone() Technologies {
	if !t.isList {
		return t
	}
	return TechnologiesList(t.items...)
}

// MarshalJSON writes a JSON string or a JSON array, never null.
func (t Technologies) MarshalJSON() ([]byte, error) {
	if t.isList {
		items := t.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(t.text)
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (t *Technologies) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*t = Technologies{}
		return nil
	case strings.HasPrefix(trimmed, "["):
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("technologiesUsed: %w", err)
		}
		*t = TechnologiesList(items...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("technologiesUsed: %w", err)
		}
		*t = TechnologiesText(s)
		return nil
	}
}
