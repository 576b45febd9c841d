package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/types"
)

type fakeBackend struct {
	generated   json.RawMessage
	generateErr error
	records     map[string]types.ResumeRecord
	deductErr   error
	deducted    []string
	created     []types.SaveResumeRequest
	updated     map[string]types.SaveResumeRequest
	deleted     []string
	credits     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		records: map[string]types.ResumeRecord{},
		updated: map[string]types.SaveResumeRequest{},
		credits: 5,
	}
}

func (f *fakeBackend) Generate(_ context.Context, _ string) (json.RawMessage, error) {
	return f.generated, f.generateErr
}

func (f *fakeBackend) Get(_ context.Context, id string) (*types.ResumeRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &rec, nil
}

func (f *fakeBackend) ListForUser(_ context.Context) ([]types.ResumeRecord, error) {
	out := []types.ResumeRecord{}
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeBackend) Create(_ context.Context, req types.SaveResumeRequest) (string, error) {
	f.created = append(f.created, req)
	return "new-id", nil
}

func (f *fakeBackend) Update(_ context.Context, id string, req types.SaveResumeRequest) error {
	f.updated[id] = req
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) Credits(_ context.Context) (int, error) {
	return f.credits, nil
}

func (f *fakeBackend) DeductCredit(_ context.Context, serviceType string) (int, error) {
	if f.deductErr != nil {
		return 0, f.deductErr
	}
	f.deducted = append(f.deducted, serviceType)
	f.credits--
	return f.credits, nil
}

type fakeAnalyzer struct {
	result *types.AnalysisResult
	err    error
	seen   string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, jobDescription, _ string, file io.Reader) (*types.AnalysisResult, error) {
	data, _ := io.ReadAll(file)
	f.seen = jobDescription + "|" + string(data)
	return f.result, f.err
}

func TestGenerate_CanonicalizesAndCharges(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = json.RawMessage(`{"summaryText": "Drafted", "experience": [{"title": "Eng", "organization": "Acme"}]}`)
	svc := New(backend, nil)

	doc, err := svc.Generate(context.Background(), "five years of Go")
	require.NoError(t, err)
	assert.Equal(t, "Drafted", doc.Summary)
	assert.Equal(t, []types.Experience{{JobTitle: "Eng", Company: "Acme"}}, doc.Experience)
	assert.Equal(t, []string{types.ServiceResumeBuild}, backend.deducted)
}

func TestGenerate_FailedDeductionWithholdsDraft(t *testing.T) {
	backend := newFakeBackend()
	backend.generated = json.RawMessage(`{"summary": "x"}`)
	backend.deductErr = errors.New("insufficient credits")
	svc := New(backend, nil)

	doc, err := svc.Generate(context.Background(), "desc")
	var creditErr *CreditError
	require.ErrorAs(t, err, &creditErr)
	assert.Equal(t, types.ServiceResumeBuild, creditErr.ServiceType)
	assert.Empty(t, doc.Summary)
}

func TestGenerate_Errors(t *testing.T) {
	svc := New(newFakeBackend(), nil)
	_, err := svc.Generate(context.Background(), "")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "description", inputErr.Field)

	backend := newFakeBackend()
	backend.generateErr = errors.New("upstream down")
	_, err = New(backend, nil).Generate(context.Background(), "desc")
	require.EqualError(t, err, "upstream down")
	assert.Empty(t, backend.deducted)
}

func TestLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.records["r1"] = types.ResumeRecord{ID: "r1", Content: json.RawMessage(`"{\"professionalSummary\": \"Stored\"}"`)}
	svc := New(backend, nil)

	title, doc, err := svc.Load(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, types.UntitledResume, title)
	assert.Equal(t, "Stored", doc.Summary)

	_, _, err = svc.Load(context.Background(), "")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSave_CreateAndUpdate(t *testing.T) {
	backend := newFakeBackend()
	svc := New(backend, nil)

	doc := types.EmptyDocument()
	doc.PersonalInformation.FullName = "Jane Doe"

	id, err := svc.Save(context.Background(), "", "", doc)
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	require.Len(t, backend.created, 1)
	assert.Equal(t, "Jane Doe's Resume", backend.created[0].Title)

	id, err = svc.Save(context.Background(), "r9", "Jane Doe's Resume", doc)
	require.NoError(t, err)
	assert.Equal(t, "r9", id)
	assert.Equal(t, "Jane Doe's Resume", backend.updated["r9"].Title)

	_, err = svc.Save(context.Background(), "", "", types.EmptyDocument())
	require.NoError(t, err)
	assert.Equal(t, types.UntitledResume, backend.created[1].Title)
}

func TestListDeleteCredits(t *testing.T) {
	backend := newFakeBackend()
	backend.records["a"] = types.ResumeRecord{ID: "a"}
	svc := New(backend, nil)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, svc.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"a"}, backend.deleted)
	assert.Error(t, svc.Delete(context.Background(), ""))

	credits, err := svc.Credits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, credits)
}

func TestAnalyze_ChargesAfterSuccess(t *testing.T) {
	backend := newFakeBackend()
	an := &fakeAnalyzer{result: &types.AnalysisResult{MatchScore: 77, MissingKeywords: []string{}, ProfileSummary: "ok"}}
	svc := New(backend, an)

	result, err := svc.Analyze(context.Background(), "jd", "cv.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, 77, result.MatchScore)
	assert.Equal(t, "jd|pdf", an.seen)
	assert.Equal(t, []string{types.ServiceResumeAnalysis}, backend.deducted)
}

func TestAnalyze_FailureIsNotCharged(t *testing.T) {
	backend := newFakeBackend()
	an := &fakeAnalyzer{err: &analysis.ExtractionError{Kind: analysis.KindUnrecognized, Message: analysis.GenericFailureMessage}}
	svc := New(backend, an)

	_, err := svc.Analyze(context.Background(), "jd", "cv.pdf", strings.NewReader("pdf"))
	assert.True(t, analysis.IsExtractionError(err))
	assert.Empty(t, backend.deducted)
}

func TestAnalyze_InputChecks(t *testing.T) {
	_, err := New(newFakeBackend(), nil).Analyze(context.Background(), "jd", "cv.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNoAnalyzer)

	svc := New(newFakeBackend(), &fakeAnalyzer{})
	_, err = svc.Analyze(context.Background(), "", "cv.pdf", strings.NewReader("x"))
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = svc.Analyze(context.Background(), "jd", "cv.pdf", nil)
	assert.ErrorAs(t, err, &inputErr)
}

func TestAnalyze_CreditFailureWithholdsResult(t *testing.T) {
	backend := newFakeBackend()
	backend.deductErr = errors.New("no credits")
	svc := New(backend, &fakeAnalyzer{result: &types.AnalysisResult{MatchScore: 1, MissingKeywords: []string{}, ProfileSummary: "s"}})

	result, err := svc.Analyze(context.Background(), "jd", "cv.pdf", strings.NewReader("x"))
	assert.Nil(t, result)
	var creditErr *CreditError
	assert.ErrorAs(t, err, &creditErr)
}
