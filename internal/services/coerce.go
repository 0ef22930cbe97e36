package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// CoerceGeneralReview maps loosely-typed model output onto a GeneralReview.
// It never fails; missing or mistyped fields take their zero defaults.
func CoerceGeneralReview(raw map[string]any) models.GeneralReview {
	return models.GeneralReview{
		OverallScore:        coerceNonNegativeInt(raw["overall_score"]),
		Summary:             coerceSummary(raw["summary"]),
		Strengths:           coerceStringList(raw["strengths"]),
		Issues:              coerceStringList(raw["issues"]),
		ActionItems:         coerceStringList(raw["action_items"]),
		MissingSkills:       coerceStringList(raw["missing_skills"]),
		TailoredSuggestions: coerceStringList(raw["tailored_suggestions"]),
	}
}

// CoerceJDMatch maps loosely-typed model output onto a JDMatch.
func CoerceJDMatch(raw map[string]any) models.JDMatch {
	return models.JDMatch{
		MatchScore:          coerceClampedInt(raw["match_score"], 0, 100),
		SkillsMatched:       coerceStringList(raw["skills_matched"]),
		SkillsMissing:       coerceStringList(raw["skills_missing"]),
		SuggestionsToTailor: coerceStringList(raw["suggestions_to_tailor"]),
	}
}

// coerceNonNegativeInt accepts only a non-negative integer literal, either as a
// JSON number or a string of digits. Everything else is 0.
func coerceNonNegativeInt(v any) int {
	switch val := v.(type) {
	case json.Number:
		return parseDigits(val.String())
	case string:
		return parseDigits(val)
	case int:
		if val >= 0 {
			return val
		}
	case int64:
		if val >= 0 && val <= math.MaxInt {
			return int(val)
		}
	}
	return 0
}

func parseDigits(s string) int {
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// coerceClampedInt converts numbers, numeric strings and booleans to an int in
// [lo, hi]. Fractions are truncated. Unconvertible values yield 0.
func coerceClampedInt(v any, lo, hi int) int {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return clampInt64(n, lo, hi)
		}
		if f, err := val.Float64(); err == nil || errors.Is(err, strconv.ErrRange) {
			return clampFloat(f, lo, hi)
		}
	case float64:
		return clampFloat(val, lo, hi)
	case int:
		return clampInt64(int64(val), lo, hi)
	case int64:
		return clampInt64(val, lo, hi)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return clampInt64(n, lo, hi)
		}
	case bool:
		if val {
			return clampInt64(1, lo, hi)
		}
		return clampInt64(0, lo, hi)
	}
	return 0
}

func clampInt64(n int64, lo, hi int) int {
	if n < int64(lo) {
		return lo
	}
	if n > int64(hi) {
		return hi
	}
	return int(n)
}

func clampFloat(f float64, lo, hi int) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f < float64(lo) {
		return lo
	}
	if f > float64(hi) {
		return hi
	}
	return int(f)
}

func coerceSummary(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []string:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return stringify(val)
	}
}

// coerceStringList returns a non-nil list. Elements are passed through, with
// non-string elements converted to their string form.
func coerceStringList(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, stringify(item))
		}
		return out
	case []string:
		return append(make([]string, 0, len(val)), val...)
	default:
		return []string{}
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
