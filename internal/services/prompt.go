package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const (
	DefaultRole           = "general applications"
	DefaultMaxPromptChars = 20000
)

const reviewerSystemMessage = "You are an expert resume reviewer with years of experience in HR and recruitment. Be specific, concise, and actionable."

const atsSystemMessage = "You are an applicant tracking system (ATS) specialist who compares resumes against job descriptions. Be objective, precise, and evidence-based."

const generalRubric = `Return JSON with keys:
- overall_score (0-100)

- summary (string)
  * an overview of 150–200 words
  * Include 2–3 high-impact observations and the candidate's positioning for the target role

- strengths (string[])
  * Each bullet is a single, specific idea (no multi-sentence paragraphs)

- issues (string[])
  * Focus on clarity, structure, impact, metrics, formatting consistency

- action_items (string[])
  * Imperative voice ("Add…", "Refactor…", "Quantify…", "Reorder…")

- missing_skills (string[])
  * MUST be the must-have skills for the **target role** (tools, frameworks, cloud, MLOps, data, soft skills)
  * Prefer concise phrases
  * Avoid duplicates and generic items like "communication"

- tailored_suggestions (string[])
  * Role-specific recommendations, resume tailoring ideas, and portfolio additions`

const matchRubric = `Return JSON with keys:
- match_score (0-100)
  * How well the resume satisfies the job description's requirements, as an ATS would score it

- skills_matched (string[])
  * Skills, tools, and qualifications present in BOTH the resume and the job description
  * Avoid duplicates

- skills_missing (string[])
  * Skills required or preferred by the job description that the resume does not show
  * Avoid duplicates

- suggestions_to_tailor (string[])
  * Concrete edits that would raise the match for this job description, in imperative voice`

// PromptBuilder renders analysis requests. It performs no I/O.
type PromptBuilder struct {
	maxChars int
}

func NewPromptBuilder(maxChars int) *PromptBuilder {
	if maxChars <= 0 {
		maxChars = DefaultMaxPromptChars
	}
	return &PromptBuilder{maxChars: maxChars}
}

// BuildGeneralRequest creates the general or role-aware review request.
func (pb *PromptBuilder) BuildGeneralRequest(resumeText, role string) models.AnalysisRequest {
	role = ResolveRole(role)

	user := fmt.Sprintf(`Analyze the following resume and score it on clarity, impact, skills relevance, and formatting.
Role to target: %s

%s

Resume:
"""%s"""`,
		role, generalRubric, truncateChars(resumeText, pb.maxChars))

	return models.AnalysisRequest{
		Mode:          models.ModeGeneral,
		Role:          role,
		SystemMessage: reviewerSystemMessage,
		UserMessage:   user,
	}
}

// BuildJDRequest creates the job-description-aware match request. Both texts
// are truncated independently.
func (pb *PromptBuilder) BuildJDRequest(resumeText, jdText, role string) models.AnalysisRequest {
	role = ResolveRole(role)

	user := fmt.Sprintf(`Compare the following resume against the job description and score how well they match.
Role to target: %s

%s

Job description:
"""%s"""

Resume:
"""%s"""`,
		role, matchRubric, truncateChars(jdText, pb.maxChars), truncateChars(resumeText, pb.maxChars))

	return models.AnalysisRequest{
		Mode:          models.ModeJDMatch,
		Role:          role,
		SystemMessage: atsSystemMessage,
		UserMessage:   user,
	}
}

func ResolveRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return DefaultRole
	}
	return role
}

// truncateChars keeps the first n characters (not bytes) of s.
func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
