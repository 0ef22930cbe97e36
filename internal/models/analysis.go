package models

type AnalysisMode string

const (
	ModeGeneral AnalysisMode = "general"
	ModeJDMatch AnalysisMode = "jd_match"
)

// AnalysisRequest is a fully rendered prompt pair for one remote call.
type AnalysisRequest struct {
	Mode          AnalysisMode
	Role          string
	SystemMessage string
	UserMessage   string
}

type GeneralReview struct {
	OverallScore        int      `json:"overall_score" yaml:"overall_score"`
	Summary             string   `json:"summary" yaml:"summary"`
	Strengths           []string `json:"strengths" yaml:"strengths"`
	Issues              []string `json:"issues" yaml:"issues"`
	ActionItems         []string `json:"action_items" yaml:"action_items"`
	MissingSkills       []string `json:"missing_skills" yaml:"missing_skills"`
	TailoredSuggestions []string `json:"tailored_suggestions" yaml:"tailored_suggestions"`
}

type JDMatch struct {
	MatchScore          int      `json:"match_score" yaml:"match_score"`
	SkillsMatched       []string `json:"skills_matched" yaml:"skills_matched"`
	SkillsMissing       []string `json:"skills_missing" yaml:"skills_missing"`
	SuggestionsToTailor []string `json:"suggestions_to_tailor" yaml:"suggestions_to_tailor"`
}

// AnalysisResult carries exactly one of General or JDMatch, selected by Mode.
type AnalysisResult struct {
	Mode    AnalysisMode
	General *GeneralReview
	JDMatch *JDMatch
}
