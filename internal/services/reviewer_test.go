package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-reviewer/internal/models"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	requests []models.AnalysisRequest
	general  *models.GeneralReview
	match    *models.JDMatch
	failMode models.AnalysisMode
}

func (f *fakeAnalyzer) Execute(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req.Mode == f.failMode {
		return nil, ErrAnalysisUnavailable
	}
	if req.Mode == models.ModeJDMatch {
		return &models.AnalysisResult{Mode: req.Mode, JDMatch: f.match}, nil
	}
	return &models.AnalysisResult{Mode: req.Mode, General: f.general}, nil
}

func (f *fakeAnalyzer) modes() []models.AnalysisMode {
	f.mu.Lock()
	defer f.mu.Unlock()

	modes := make([]models.AnalysisMode, 0, len(f.requests))
	for _, req := range f.requests {
		modes = append(modes, req.Mode)
	}
	return modes
}

func newFakeAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{
		general: &models.GeneralReview{OverallScore: 80, Summary: "Good", Strengths: []string{"Go"}},
		match:   &models.JDMatch{MatchScore: 70, SkillsMatched: []string{"Go"}},
	}
}

func textDoc(name, content string) models.UploadedDocument {
	return models.UploadedDocument{Filename: name, Format: models.FormatPlainText, Content: []byte(content)}
}

func newTestReviewService(analyzer AnalysisClient) ReviewService {
	return NewReviewService(NewTextExtractor(0), NewPromptBuilder(0), analyzer, 10)
}

func TestReview_GeneralOnly(t *testing.T) {
	analyzer := newFakeAnalyzer()
	service := newTestReviewService(analyzer)

	outcome, err := service.Review(context.Background(), ReviewInput{
		Resume: textDoc("cv.txt", "Jane   Doe\n\n\n\nBackend engineer with Go"),
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultRole, outcome.Role)
	assert.Equal(t, 80, outcome.General.OverallScore)
	assert.Nil(t, outcome.JDMatch)
	assert.Empty(t, outcome.Warnings)
	assert.Equal(t, "Jane Doe\n\n...", outcome.ResumePreview)
	assert.Empty(t, outcome.JobDescPreview)
	assert.Equal(t, []models.AnalysisMode{models.ModeGeneral}, analyzer.modes())
}

func TestReview_WithJobDescription(t *testing.T) {
	analyzer := newFakeAnalyzer()
	service := newTestReviewService(analyzer)

	outcome, err := service.Review(context.Background(), ReviewInput{
		Resume:         textDoc("cv.txt", "Backend engineer with Go"),
		JobDescription: &models.UploadedDocument{Filename: "jd.txt", Format: models.FormatPlainText, Content: []byte("Need Go and Kafka")},
		Role:           "Platform Engineer",
	})

	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", outcome.Role)
	require.NotNil(t, outcome.JDMatch)
	assert.Equal(t, 70, outcome.JDMatch.MatchScore)
	assert.Equal(t, "Need Go an...", outcome.JobDescPreview)
	assert.ElementsMatch(t, []models.AnalysisMode{models.ModeGeneral, models.ModeJDMatch}, analyzer.modes())

	for _, req := range analyzer.requests {
		assert.Equal(t, "Platform Engineer", req.Role)
		if req.Mode == models.ModeJDMatch {
			assert.Contains(t, req.UserMessage, "Need Go and Kafka")
		}
	}
}

func TestReview_UnreadableJobDescription(t *testing.T) {
	tests := []struct {
		name    string
		jd      models.UploadedDocument
		warning string
	}{
		{
			name:    "parse failure",
			jd:      models.UploadedDocument{Filename: "jd.pdf", Format: models.FormatPDF, Content: []byte("not a pdf")},
			warning: "Failed to parse job description: ",
		},
		{
			name:    "unsupported format",
			jd:      models.UploadedDocument{Filename: "jd.rtf", Format: models.FormatUnsupported, Content: []byte("{\\rtf1}")},
			warning: "Failed to parse job description: ",
		},
		{
			name:    "whitespace only",
			jd:      textDoc("jd.txt", " \n\t\n "),
			warning: "The uploaded job description is empty. Proceeding with role-based review only.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newFakeAnalyzer()
			service := newTestReviewService(analyzer)
			jd := tt.jd

			outcome, err := service.Review(context.Background(), ReviewInput{
				Resume:         textDoc("cv.txt", "Backend engineer"),
				JobDescription: &jd,
			})

			require.NoError(t, err)
			require.Len(t, outcome.Warnings, 1)
			assert.True(t, strings.HasPrefix(outcome.Warnings[0], tt.warning), outcome.Warnings[0])
			assert.Nil(t, outcome.JDMatch)
			assert.Equal(t, []models.AnalysisMode{models.ModeGeneral}, analyzer.modes())
		})
	}
}

func TestReview_ResumeErrors(t *testing.T) {
	tests := []struct {
		name    string
		resume  models.UploadedDocument
		wantErr error
	}{
		{"empty upload", textDoc("cv.txt", ""), ErrEmptyInput},
		{"whitespace only", textDoc("cv.txt", "  \n\n "), ErrEmptyInput},
		{"unsupported", models.UploadedDocument{Filename: "cv.odt", Format: models.FormatUnsupported, Content: []byte("x")}, ErrUnsupportedFormat},
		{"corrupt pdf", models.UploadedDocument{Filename: "cv.pdf", Format: models.FormatPDF, Content: []byte("garbage")}, ErrDocumentParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newFakeAnalyzer()
			service := newTestReviewService(analyzer)

			_, err := service.Review(context.Background(), ReviewInput{Resume: tt.resume})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, analyzer.modes())
		})
	}
}

func TestReview_AnalysisFailure(t *testing.T) {
	for _, mode := range []models.AnalysisMode{models.ModeGeneral, models.ModeJDMatch} {
		t.Run(string(mode), func(t *testing.T) {
			analyzer := newFakeAnalyzer()
			analyzer.failMode = mode
			service := newTestReviewService(analyzer)
			jd := textDoc("jd.txt", "Need Go")

			_, err := service.Review(context.Background(), ReviewInput{
				Resume:         textDoc("cv.txt", "Backend engineer"),
				JobDescription: &jd,
			})

			assert.True(t, errors.Is(err, ErrAnalysisUnavailable))
		})
	}
}

func TestReviewService_ExtractDocument(t *testing.T) {
	service := newTestReviewService(newFakeAnalyzer())

	text, err := service.ExtractDocument(context.Background(), textDoc("cv.txt", "a b"))

	require.NoError(t, err)
	assert.Equal(t, "a b", text)
}
