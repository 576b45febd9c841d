// Package analysis turns whatever a resume analyzer sends back into a
// types.AnalysisResult.
//
// Analyzer backends disagree on envelope and field names ("matchScore",
// "JD Match", "ats_score", ...), on value types ("87%" vs 87) and on how they
// report failures. Extract accepts all of them and fails only when nothing
// usable can be recovered.
package analysis

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-studio/internal/payload"
	"github.com/jonathan/resume-studio/internal/types"
)

// Extract normalizes a raw analyzer response. raw may be the response body as
// a string or bytes, or an already decoded JSON value.
//
// On failure the result is nil and the error is an *ExtractionError. Extract
// is pure and safe for concurrent use.
func Extract(raw any) (*types.AnalysisResult, error) {
	body := decodeBody(raw)
	obj, isObject := payload.AsObject(body)

	if isObject {
		if err := reportedError(obj); err != nil {
			return nil, err
		}
	}

	cands := candidates(body)
	score, hasScore := normalizeScore(findValue(cands, scoreKeys))
	keywords := normalizeKeywords(findValue(cands, missingKeywordKeys))
	summary := normalizeSummary(findValue(cands, summaryKeys))

	if !hasScore && len(keywords) == 0 && summary == types.NoSummaryAvailable {
		msg := GenericFailureMessage
		if isObject {
			if m, ok := firstTruthy(obj, "message", "error", "detail", "statusText"); ok {
				msg = payload.Compact(m)
			}
		}
		return nil, &ExtractionError{Kind: KindUnrecognized, Message: msg}
	}

	return &types.AnalysisResult{
		MatchScore:      score,
		MissingKeywords: keywords,
		ProfileSummary:  summary,
	}, nil
}

// decodeBody parses textual bodies as JSON, falling back to the raw text.
func decodeBody(raw any) any {
	switch x := raw.(type) {
	case string:
		return decodeString(x)
	case []byte:
		return decodeString(string(x))
	case json.RawMessage:
		return decodeString(string(x))
	}
	v, err := payload.Normalize(raw)
	if err != nil {
		return nil
	}
	return v
}

func decodeString(s string) any {
	if v, ok := payload.DecodeText(s); ok {
		return v
	}
	return s
}

// reportedError short-circuits bodies that carry an explicit error field.
func reportedError(obj *payload.Object) error {
	msg, ok := firstTruthy(obj, "error", "message")
	if !ok {
		return nil
	}
	composed := payload.Compact(msg)
	if detail, ok := firstTruthy(obj, "details", "detail"); ok {
		if text := payload.Compact(detail); text != "" {
			composed += ": " + text
		}
	}
	return &ExtractionError{Kind: KindBackendError, Message: composed}
}

func firstTruthy(obj *payload.Object, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, _ := obj.Get(k); payload.Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// candidate is an object searched for result fields, indexed by normalized
// key. A later key shadows an earlier one with the same normalized form.
type candidate struct {
	obj   *payload.Object
	index map[string]string
}

func newCandidate(obj *payload.Object) candidate {
	index := make(map[string]string, obj.Len())
	for _, k := range obj.Keys() {
		index[normalizeKey(k)] = k
	}
	return candidate{obj: obj, index: index}
}

// candidates lists the objects to search, in priority order: the body itself,
// its wrapper envelopes, then every direct child object in document order.
// A list body contributes its object elements.
func candidates(body any) []candidate {
	var out []candidate
	push := func(v any) {
		if obj, ok := payload.AsObject(v); ok {
			out = append(out, newCandidate(obj))
		}
	}

	if list, ok := payload.AsList(body); ok {
		for _, item := range list {
			push(item)
		}
		return out
	}

	root, ok := payload.AsObject(body)
	if !ok {
		return nil
	}
	push(root)
	for _, k := range wrapperKeys {
		v, _ := root.Get(k)
		push(v)
	}
	for _, k := range root.Keys() {
		v, _ := root.Get(k)
		push(v)
	}
	return out
}

// findValue returns the first non-null value stored under any of the
// normalized synonyms, scanning candidates in order.
func findValue(cands []candidate, synonyms []string) any {
	for _, c := range cands {
		for _, syn := range synonyms {
			key, ok := c.index[syn]
			if !ok {
				continue
			}
			if v, _ := c.obj.Get(key); v != nil {
				return v
			}
		}
	}
	return nil
}

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// normalizeScore accepts numbers and numeric strings such as "87%" or
// "72.5 / 100", rounds half up and clamps to [0,100].
func normalizeScore(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(x, "%", ""))
		num := leadingFloat.FindString(cleaned)
		if num == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	rounded := math.Floor(f + 0.5)
	return int(math.Max(0, math.Min(100, rounded))), true
}

// normalizeKeywords accepts a list or a comma/newline separated string.
// List entries are kept verbatim apart from null and empty ones.
func normalizeKeywords(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if item == nil {
				continue
			}
			if s := payload.Compact(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == '\n' }) {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func normalizeSummary(v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return types.NoSummaryAvailable
}
