package analysis

import "strings"

// wrapperKeys name the envelopes analyzers commonly nest their result in.
var wrapperKeys = []string{"data", "result", "analysis", "output", "response", "payload"}

var (
	scoreKeys = normalizeAll(
		"matchScore", "match_score", "JD Match", "jd_match", "score", "Score",
		"jd match percentage", "jdMatchPercentage", "ats_score", "ats score", "percentage", "percent",
	)

	missingKeywordKeys = normalizeAll(
		"missingKeywords", "missing_keywords", "MissingKeywords", "missing_keys", "keywords_missing",
		"missing keywords list", "missingKeywordsList", "missing", "missing_terms",
	)

	summaryKeys = normalizeAll(
		"profileSummary", "profile_summary", "Profile Summary", "recommendations", "summary", "analysis",
		"ai_recommendations", "ai recommendations", "feedback", "insights",
	)
)

// normalizeKey lowercases k and drops everything but ASCII letters and digits,
// so "JD Match", "jd_match" and "jdMatch" compare equal.
func normalizeKey(k string) string {
	var sb strings.Builder
	sb.Grow(len(k))
	for _, r := range strings.ToLower(k) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func normalizeAll(keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, normalizeKey(k))
	}
	return out
}
