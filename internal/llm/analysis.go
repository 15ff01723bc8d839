package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Analysis is the structured summary the model extracts from a description.
// Keys match the scrape service's human-readable field labels.
type Analysis struct {
	Skills           StringList `json:"Skills"`
	ExperienceLevel  string     `json:"Experience Level"`
	Responsibilities StringList `json:"Responsibilities"`
	SalaryRange      string     `json:"Salary Range"`
	WorkMode         string     `json:"Work Mode"`
}

// StringList decodes from either a JSON array of strings or a single string
// with items separated by semicolons or newlines.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = compact(items)
		return nil
	}

	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a string or list of strings: %w", err)
	}
	if single == nil {
		*l = nil
		return nil
	}
	*l = compact(strings.FieldsFunc(*single, func(r rune) bool { return r == ';' || r == '\n' }))
	return nil
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

const analysisPromptTemplate = `Analyze the following job description and extract key information.

Extract:
1. Required Skills (as a list)
2. Experience Level (one of: entry, mid, senior)
3. Key Responsibilities (as a list)
4. Estimated Salary Range (if not mentioned, estimate from role and seniority)
5. Work Mode (one of: remote, hybrid, onsite)

Return ONLY a JSON object with exactly these keys:
"Skills", "Experience Level", "Responsibilities", "Salary Range", "Work Mode"

Job description:
%s`

// BuildAnalysisPrompt returns the extraction prompt for a description.
func BuildAnalysisPrompt(description string) string {
	return fmt.Sprintf(analysisPromptTemplate, strings.TrimSpace(description))
}

// ParseAnalysis decodes a model response into an Analysis.
func ParseAnalysis(raw string) (*Analysis, error) {
	var a Analysis
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	a.ExperienceLevel = strings.ToLower(strings.TrimSpace(a.ExperienceLevel))
	a.WorkMode = strings.ToLower(strings.TrimSpace(a.WorkMode))
	a.SalaryRange = strings.TrimSpace(a.SalaryRange)
	return &a, nil
}

// AnalyzeDescription asks the model to summarize a job description.
func AnalyzeDescription(ctx context.Context, client Client, description string) (*Analysis, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is empty")
	}
	raw, err := client.GenerateJSON(ctx, BuildAnalysisPrompt(description), TierLite)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	return ParseAnalysis(raw)
}

const comparisonPromptTemplate = `Compare these two job descriptions and highlight the key differences.

Job 1: %s at %s
%s

Job 2: %s at %s
%s

Provide a short comparison based on:
1. Required skills and experience
2. Job responsibilities
3. Company benefits and perks
4. Overall job attractiveness`

// ComparisonSubject is one side of a comparison.
type ComparisonSubject struct {
	Title       string
	Company     string
	Description string
}

// BuildComparisonPrompt returns the prompt comparing two postings.
func BuildComparisonPrompt(a, b ComparisonSubject) string {
	return fmt.Sprintf(comparisonPromptTemplate,
		a.Title, a.Company, strings.TrimSpace(a.Description),
		b.Title, b.Company, strings.TrimSpace(b.Description))
}

// CompareDescriptions returns the model's prose comparison of two postings.
func CompareDescriptions(ctx context.Context, client Client, a, b ComparisonSubject) (string, error) {
	text, err := client.GenerateContent(ctx, BuildComparisonPrompt(a, b), TierStandard)
	if err != nil {
		return "", fmt.Errorf("comparison request failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
