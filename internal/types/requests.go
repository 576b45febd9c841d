package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// Service types charged against a user's credit balance.
const (
	ServiceResumeBuild    = "resume_build"
	ServiceResumeAnalysis = "resume_analysis"
)

// UntitledResume is the title used when neither a title nor a name is known.
const UntitledResume = "Untitled Resume"

var validate = validator.New()

// GenerateRequest asks the backend to draft a resume from free text.
type GenerateRequest struct {
	Description string `json:"description" validate:"required"`
}

// AnalyzeRequest carries the job description half of an analysis; the resume
// file travels as a multipart part.
type AnalyzeRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	FileName       string `json:"fileName" validate:"required"`
}

// DeductCreditRequest is the body of a credit deduction.
type DeductCreditRequest struct {
	ServiceType string `json:"serviceType" validate:"required,oneof=resume_build resume_analysis"`
}

// SaveResumeRequest is the body sent to the storage service on create/update.
type SaveResumeRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content Document `json:"content"`
}

// ResumeRecord is a stored resume as returned by the storage service.
// Content is either a JSON object or a JSON-encoded string holding one.
type ResumeRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// CreditsEnvelope is the response shape of the credit endpoints.
type CreditsEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Credits int `json:"credits"`
	} `json:"data"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the DeductCreditRequest using the validator.
func (r *DeductCreditRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	return validate.Struct(r)
}
