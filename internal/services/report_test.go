package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-reviewer/internal/models"
)

func TestRenderReport(t *testing.T) {
	review := models.GeneralReview{
		OverallScore:        78,
		Summary:             "Solid backend profile.",
		Strengths:           []string{"Go", "Postgres"},
		Issues:              []string{"No metrics"},
		ActionItems:         []string{"Quantify impact"},
		MissingSkills:       []string{},
		TailoredSuggestions: []string{"Lead with API work"},
	}

	t.Run("review only", func(t *testing.T) {
		want := "# Resume Review\n\n" +
			"**Overall score:** 78\n\n" +
			"## Executive Summary\nSolid backend profile.\n\n" +
			"## Strengths\n- Go\n- Postgres\n\n" +
			"## Issues\n- No metrics\n\n" +
			"## Action Items\n- Quantify impact\n\n" +
			"## Missing Skills (general/role-aware)\n\n" +
			"## Role-specific Tips\n- Lead with API work\n"

		assert.Equal(t, want, RenderReport(review, nil))
	})

	t.Run("with match section", func(t *testing.T) {
		match := &models.JDMatch{
			MatchScore:          64,
			SkillsMatched:       []string{"Go"},
			SkillsMissing:       []string{"Kafka"},
			SuggestionsToTailor: []string{},
		}

		report := RenderReport(review, match)

		assert.Contains(t, report, "- Lead with API work\n\n\n# ATS Match (Job Description-aware)\n\n")
		assert.Contains(t, report, "**Match score:** 64\n")
		assert.Contains(t, report, "## Skills Missing (from JD perspective)\n- Kafka\n")
		assert.Equal(t, "## Tailoring Suggestions for this JD\n", report[len(report)-len("## Tailoring Suggestions for this JD\n"):])
	})
}
