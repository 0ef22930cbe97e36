package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const ReportFilename = "resume_review_report.md"

// RenderReport builds the downloadable markdown report. The match section is
// appended only when a match result exists.
func RenderReport(review models.GeneralReview, match *models.JDMatch) string {
	report := renderReviewSection(review)
	if match != nil {
		report += "\n\n" + renderMatchSection(*match)
	}
	return report
}

func renderReviewSection(review models.GeneralReview) string {
	md := []string{
		"# Resume Review\n",
		fmt.Sprintf("**Overall score:** %d\n", review.OverallScore),
		fmt.Sprintf("## Executive Summary\n%s\n", review.Summary),
		"## Strengths",
	}
	md = append(md, bullets(review.Strengths)...)
	md = append(md, "\n## Issues")
	md = append(md, bullets(review.Issues)...)
	md = append(md, "\n## Action Items")
	md = append(md, bullets(review.ActionItems)...)
	md = append(md, "\n## Missing Skills (general/role-aware)")
	md = append(md, bullets(review.MissingSkills)...)
	md = append(md, "\n## Role-specific Tips")
	md = append(md, bullets(review.TailoredSuggestions)...)

	return strings.TrimSpace(strings.Join(md, "\n")) + "\n"
}

func renderMatchSection(match models.JDMatch) string {
	md := []string{
		"# ATS Match (Job Description-aware)\n",
		fmt.Sprintf("**Match score:** %d\n", match.MatchScore),
		"## Skills Matched",
	}
	md = append(md, bullets(match.SkillsMatched)...)
	md = append(md, "\n## Skills Missing (from JD perspective)")
	md = append(md, bullets(match.SkillsMissing)...)
	md = append(md, "\n## Tailoring Suggestions for this JD")
	md = append(md, bullets(match.SuggestionsToTailor)...)

	return strings.TrimSpace(strings.Join(md, "\n")) + "\n"
}

func bullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, "- "+item)
	}
	return out
}
