// Package canonical maps loosely structured resume JSON, as produced by the
// generation backend or read back from storage, onto the fixed types.Document
// shape the form and PDF layers bind to.
package canonical

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/payload"
	"github.com/jonathan/resume-studio/internal/types"
)

// Canonicalize builds a fully populated document from raw input. It accepts
// decoded JSON values, raw JSON bytes, JSON text (optionally fenced) and
// types.Document itself. It never fails: input it cannot use yields the
// all-defaults document, and a failure part way through discards the partial
// result rather than returning it.
func Canonicalize(raw any) (doc types.Document) {
	defer func() {
		if r := recover(); r != nil {
			doc = types.EmptyDocument()
		}
	}()

	root := toObject(raw)
	if root == nil {
		return types.EmptyDocument()
	}
	return build(root)
}

const maxStringUnwrap = 2

func toObject(raw any) *payload.Object {
	v, err := payload.Normalize(raw)
	if err != nil {
		return nil
	}
	// Stored records sometimes hold the document as a JSON-encoded string,
	// and that string may itself arrive as JSON text.
	for range maxStringUnwrap {
		s, ok := v.(string)
		if !ok {
			break
		}
		v, _ = payload.DecodeText(s)
	}
	obj, _ := payload.AsObject(v)
	return obj
}

func build(root *payload.Object) types.Document {
	doc := types.EmptyDocument()

	if v, ok := root.Get("personalInformation"); ok {
		if info, ok := payload.AsObject(v); ok {
			doc.PersonalInformation = personalInformation(info)
		}
	}

	doc.Summary = firstString(root, summaryKeys...)

	doc.Skills = mapList(root, "skills", skill)
	doc.Experience = mapList(root, "experience", experience)
	doc.Education = mapList(root, "education", education)
	doc.Certifications = mapList(root, "certifications", certification)
	doc.Projects = mapList(root, "projects", project)
	doc.Languages = mapList(root, "languages", language)
	doc.Interests = mapList(root, "interests", interest)
	doc.Achievements = mapList(root, "achievements", achievement)

	return doc
}

// personalInformation merges exact field names onto the defaults.
func personalInformation(info *payload.Object) types.PersonalInformation {
	values := make(map[string]string, len(personalFields))
	for _, name := range personalFields {
		if v, ok := info.Get(name); ok {
			if s, ok := text(v); ok {
				values[name] = s
			}
		}
	}
	return types.PersonalInformation{
		FullName:    values["fullName"],
		Email:       values["email"],
		PhoneNumber: values["phoneNumber"],
		Location:    values["location"],
		LinkedIn:    values["linkedin"],
		GitHub:      values["gitHub"],
		Portfolio:   values["portfolio"],
	}
}

// mapList maps the list stored under key item by item. Anything other than a
// list yields an empty list; single objects are not wrapped.
func mapList[T any](root *payload.Object, key string, mapItem func(item any) T) []T {
	out := []T{}
	v, _ := root.Get(key)
	list, ok := payload.AsList(v)
	if !ok {
		return out
	}
	for _, item := range list {
		out = append(out, mapItem(item))
	}
	return out
}

// resolve looks up every field of specs on item. Non-object items resolve
// every field to "".
func resolve(item any, specs []fieldSpec) map[string]string {
	obj, _ := payload.AsObject(item)
	values := make(map[string]string, len(specs))
	for _, spec := range specs {
		values[spec.name] = firstString(obj, spec.keys...)
	}
	return values
}

// firstString returns the first non-empty text value found under keys.
func firstString(obj *payload.Object, keys ...string) string {
	for _, key := range keys {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if s, ok := text(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// text renders scalars as strings and joins lists of scalars with a space.
// Objects and null have no text form.
func text(v any) (string, bool) {
	if s, ok := payload.Scalar(v); ok {
		return s, true
	}
	list, ok := payload.AsList(v)
	if !ok {
		return "", false
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := payload.Scalar(item); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), true
}

func skill(item any) types.Skill {
	if s, ok := item.(string); ok {
		return types.Skill{Title: s}
	}
	v := resolve(item, skillFields)
	return types.Skill{Title: v["title"], Level: v["level"]}
}

func experience(item any) types.Experience {
	v := resolve(item, experienceFields)
	return types.Experience{
		JobTitle:    v["jobTitle"],
		Company:     v["company"],
		Location:    v["location"],
		Duration:    v["duration"],
		Description: v["description"],
	}
}

func education(item any) types.Education {
	v := resolve(item, educationFields)
	return types.Education{
		Degree:         v["degree"],
		University:     v["university"],
		Marks:          v["Marks"],
		Location:       v["location"],
		GraduationYear: v["graduationYear"],
	}
}

func certification(item any) types.Certification {
	v := resolve(item, certificationFields)
	return types.Certification{
		Title:               v["title"],
		IssuingOrganization: v["issuingOrganization"],
		Year:                v["year"],
	}
}

func project(item any) types.Project {
	v := resolve(item, projectFields)
	obj, _ := payload.AsObject(item)
	return types.Project{
		Title:            v["title"],
		Description:      v["description"],
		TechnologiesUsed: technologies(obj, projectTechnologies.keys...),
		GithubLink:       v["githubLink"],
		LiveLink:         v["LiveLink"],
	}
}

// technologies keeps the list form when the source used a list, even an
// empty one, and falls back to the first non-empty text otherwise.
func technologies(obj *payload.Object, keys ...string) types.Technologies {
	for _, key := range keys {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if list, ok := payload.AsList(v); ok {
			items := make([]string, 0, len(list))
			for _, entry := range list {
				if s, ok := payload.Scalar(entry); ok {
					items = append(items, s)
				}
			}
			return types.TechnologiesList(items...)
		}
		if s, ok := payload.Scalar(v); ok && s != "" {
			return types.TechnologiesText(s)
		}
	}
	return types.TechnologiesText("")
}

func language(item any) types.Language {
	return types.Language{Name: resolve(item, languageFields)["name"]}
}

func interest(item any) types.Interest {
	return types.Interest{Name: resolve(item, interestFields)["name"]}
}

func achievement(item any) types.Achievement {
	v := resolve(item, achievementFields)
	return types.Achievement{
		Title:       v["title"],
		Description: v["description"],
		Link:        v["link"],
	}
}
