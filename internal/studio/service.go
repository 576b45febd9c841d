// Package studio implements the resume workflows: drafting a resume from a
// description, loading and saving it, and scoring it against a job.
package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/jonathan/resume-studio/internal/canonical"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/types"
)

// ResumeBackend is the resume service: generation, storage and billing.
type ResumeBackend interface {
	Generate(ctx context.Context, description string) (json.RawMessage, error)
	Get(ctx context.Context, id string) (*types.ResumeRecord, error)
	ListForUser(ctx context.Context) ([]types.ResumeRecord, error)
	Create(ctx context.Context, req types.SaveResumeRequest) (string, error)
	Update(ctx context.Context, id string, req types.SaveResumeRequest) error
	Delete(ctx context.Context, id string) error
	Credits(ctx context.Context) (int, error)
	DeductCredit(ctx context.Context, serviceType string) (int, error)
}

// Analyzer scores a resume file against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, jobDescription, fileName string, file io.Reader) (*types.AnalysisResult, error)
}

// ErrNoAnalyzer is returned by Analyze when no analyzer is configured.
var ErrNoAnalyzer = errors.New("no analyzer configured")

// Service runs the workflows. It holds no per-call state.
type Service struct {
	backend  ResumeBackend
	analyzer Analyzer
}

// New creates a service. analyzer may be nil when only resume workflows are used.
func New(backend ResumeBackend, analyzer Analyzer) *Service {
	return &Service{backend: backend, analyzer: analyzer}
}

// Generate drafts a resume and charges a resume_build credit. The draft is
// only returned once the credit has been deducted.
func (s *Service) Generate(ctx context.Context, description string) (types.Document, error) {
	req := types.GenerateRequest{Description: description}
	if err := req.Validate(); err != nil {
		return types.Document{}, &InputError{Field: "description", Message: "is required", Cause: err}
	}

	raw, err := s.backend.Generate(ctx, description)
	if err != nil {
		return types.Document{}, err
	}
	doc := canonical.Canonicalize(raw)

	remaining, err := s.backend.DeductCredit(ctx, types.ServiceResumeBuild)
	if err != nil {
		return types.Document{}, &CreditError{ServiceType: types.ServiceResumeBuild, Cause: err}
	}
	logger.Ctx(ctx).Info().Int("credits", remaining).Msg("resume generated")
	return doc, nil
}

// Load fetches a stored resume as a title and canonical document.
func (s *Service) Load(ctx context.Context, id string) (string, types.Document, error) {
	if id == "" {
		return "", types.Document{}, &InputError{Field: "id", Message: "is required"}
	}
	rec, err := s.backend.Get(ctx, id)
	if err != nil {
		return "", types.Document{}, err
	}
	title, doc := canonical.FromRecord(*rec)
	return title, doc, nil
}

// Save stores doc, creating a new resume when id is empty. The title falls
// back to the owner's name. It returns the resume id.
func (s *Service) Save(ctx context.Context, id, title string, doc types.Document) (string, error) {
	doc = canonical.Canonicalize(doc)
	req := types.SaveResumeRequest{
		Title:   canonical.ResumeTitle(title, doc.PersonalInformation.FullName),
		Content: doc,
	}
	if err := req.Validate(); err != nil {
		return "", &InputError{Field: "resume", Message: "cannot be saved", Cause: err}
	}

	if id == "" {
		newID, err := s.backend.Create(ctx, req)
		if err != nil {
			return "", err
		}
		logger.Ctx(ctx).Info().Str("resume_id", newID).Msg("resume created")
		return newID, nil
	}

	if err := s.backend.Update(ctx, id, req); err != nil {
		return "", err
	}
	logger.Ctx(ctx).Info().Str("resume_id", id).Msg("resume updated")
	return id, nil
}

// List returns the caller's stored resumes.
func (s *Service) List(ctx context.Context) ([]types.ResumeRecord, error) {
	return s.backend.ListForUser(ctx)
}

// Delete removes a stored resume.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &InputError{Field: "id", Message: "is required"}
	}
	return s.backend.Delete(ctx, id)
}

// Credits returns the caller's credit balance.
func (s *Service) Credits(ctx context.Context) (int, error) {
	return s.backend.Credits(ctx)
}

// Analyze scores a resume against a job description and charges a
// resume_analysis credit. Nothing is charged when the analysis fails.
func (s *Service) Analyze(ctx context.Context, jobDescription, fileName string, file io.Reader) (*types.AnalysisResult, error) {
	if s.analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	req := types.AnalyzeRequest{JobDescription: jobDescription, FileName: fileName}
	if err := req.Validate(); err != nil {
		return nil, &InputError{Field: "analysis", Message: "job description and resume file are required", Cause: err}
	}
	if file == nil {
		return nil, &InputError{Field: "resume", Message: "file is required"}
	}

	result, err := s.analyzer.Analyze(ctx, jobDescription, fileName, file)
	if err != nil {
		return nil, err
	}

	if _, err := s.backend.DeductCredit(ctx, types.ServiceResumeAnalysis); err != nil {
		return nil, &CreditError{ServiceType: types.ServiceResumeAnalysis, Cause: err}
	}
	logger.Ctx(ctx).Info().Int("match_score", result.MatchScore).Int("missing_keywords", len(result.MissingKeywords)).Msg("resume analyzed")
	return result, nil
}
