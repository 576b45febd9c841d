// Package schemas holds the JSON Schemas for the documents this service emits.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	Resume         = "resume.schema.json"
	AnalysisResult = "analysis_result.schema.json"
)
