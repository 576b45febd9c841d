package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/canonical"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// GenerateRequest is the body of POST /v1/resumes/generate.
type GenerateRequest struct {
	Description string `json:"description"`
}

// SaveRequest is the body of POST /v1/resumes and PUT /v1/resumes/{id}.
// Content may use any of the accepted synonyms; it is canonicalized first.
type SaveRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// ResumeResponse is a stored resume with canonical content.
type ResumeResponse struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Content types.Document `json:"content"`
}

// SaveResponse carries the id of a created or updated resume.
type SaveResponse struct {
	ID string `json:"id"`
}

// CreditsResponse carries the caller's credit balance.
type CreditsResponse struct {
	Credits int `json:"credits"`
}

// readBody reads a size-limited request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return body, nil
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// canonicalize runs the canonicalizer and, when enabled, checks its output
// against the resume schema.
func (s *Server) canonicalize(r *http.Request, raw any) types.Document {
	doc := canonical.Canonicalize(raw)
	if s.validateOutput {
		if err := schemas.ValidateDocument(doc); err != nil {
			logger.Ctx(r.Context()).Error().Err(err).Msg("canonical document failed schema validation")
		}
	}
	return doc
}

// handleCanonicalize handles POST /v1/canonicalize. Any body is accepted:
// JSON, fenced JSON or text. Unusable input yields the empty document.
func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.canonicalize(r, string(body)))
}

// handleExtract handles POST /v1/extract: the body is an analyzer response
// in any supported shape.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	result, err := analysis.Extract(body)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerate handles POST /v1/resumes/generate.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failResponse(w, r, err)
		return
	}

	doc, err := s.studio.Generate(r.Context(), req.Description)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleListResumes handles GET /v1/resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	records, err := s.studio.List(r.Context())
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	if records == nil {
		records = []types.ResumeRecord{}
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleGetResume handles GET /v1/resumes/{id}.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	title, doc, err := s.studio.Load(r.Context(), id)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeResponse{ID: id, Title: title, Content: doc})
}

// handleCreateResume handles POST /v1/resumes.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	s.saveResume(w, r, "", http.StatusCreated)
}

// handleUpdateResume handles PUT /v1/resumes/{id}.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	s.saveResume(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *Server) saveResume(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req SaveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failResponse(w, r, err)
		return
	}
	if len(req.Content) == 0 || string(req.Content) == "null" {
		s.failResponse(w, r, &ErrValidation{Field: "content", Message: "is required"})
		return
	}

	doc := s.canonicalize(r, req.Content)
	savedID, err := s.studio.Save(r.Context(), id, req.Title, doc)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, status, SaveResponse{ID: savedID})
}

// handleDeleteResume handles DELETE /v1/resumes/{id}.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.studio.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCredits handles GET /v1/credits.
func (s *Server) handleCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := s.studio.Credits(r.Context())
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, CreditsResponse{Credits: credits})
}

// handleAnalyze handles POST /v1/analyze. The request is multipart with a
// jobDescription field and a resume file part.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.failResponse(w, r, &ErrValidation{Field: "body", Message: "expected multipart form: " + err.Error()})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			s.failResponse(w, r, &ErrValidation{Field: "resume", Message: "file is required"})
			return
		}
		s.failResponse(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}
	defer file.Close()

	result, err := s.studio.Analyze(r.Context(), r.FormValue("jobDescription"), header.Filename, file)
	if err != nil {
		s.failResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
