package types

// NoSummaryAvailable is the profile summary used when the analyzer response
// carries no usable summary text.
const NoSummaryAvailable = "No summary available"

// AnalysisResult is the normalized outcome of a resume-vs-job-description analysis
type AnalysisResult struct {
	MatchScore      int      `json:"matchScore"`      // 0-100
	MissingKeywords []string `json:"missingKeywords"` // discovery order, duplicates kept
	ProfileSummary  string   `json:"profileSummary"`  // markdown, never empty
}
