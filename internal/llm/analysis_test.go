package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Analysis
		wantErr bool
	}{
		{
			name: "lists as arrays",
			raw:  `{"Skills": ["Go", " SQL ", ""], "Experience Level": "Senior", "Responsibilities": ["Build APIs"], "Salary Range": "$150k", "Work Mode": "Remote"}`,
			want: Analysis{
				Skills:           StringList{"Go", "SQL"},
				ExperienceLevel:  "senior",
				Responsibilities: StringList{"Build APIs"},
				SalaryRange:      "$150k",
				WorkMode:         "remote",
			},
		},
		{
			name: "lists as strings inside a fence",
			raw:  "```json\n{\"Skills\": \"Go; Kubernetes\", \"Responsibilities\": \"Ship\\nReview\", \"Work Mode\": \"hybrid\"}\n```",
			want: Analysis{
				Skills:           StringList{"Go", "Kubernetes"},
				Responsibilities: StringList{"Ship", "Review"},
				WorkMode:         "hybrid",
			},
		},
		{
			name: "null lists",
			raw:  `{"Skills": null, "Experience Level": "mid"}`,
			want: Analysis{ExperienceLevel: "mid"},
		},
		{name: "not json", raw: "I could not find anything", wantErr: true},
		{name: "wrong list type", raw: `{"Skills": 3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestAnalyzeDescription(t *testing.T) {
	client := &fakeClient{response: `{"Skills": ["Go"], "Work Mode": "onsite"}`}

	got, err := AnalyzeDescription(context.Background(), client, "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, StringList{"Go"}, got.Skills)
	assert.Equal(t, "onsite", got.WorkMode)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "We need a Go engineer.")
	assert.Contains(t, client.prompts[0], `"Salary Range"`)
	assert.Equal(t, TierLite, client.tiers[0])
}

func TestAnalyzeDescription_Errors(t *testing.T) {
	_, err := AnalyzeDescription(context.Background(), &fakeClient{}, "   ")
	assert.Error(t, err)

	_, err = AnalyzeDescription(context.Background(), &fakeClient{err: errors.New("quota")}, "text")
	assert.ErrorContains(t, err, "quota")
}

func TestCompareDescriptions(t *testing.T) {
	client := &fakeClient{response: "  Job 1 pays more.\n"}

	got, err := CompareDescriptions(context.Background(), client,
		ComparisonSubject{Title: "Backend Engineer", Company: "Acme", Description: "Go"},
		ComparisonSubject{Title: "Data Analyst", Company: "Globex", Description: "SQL"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Job 1 pays more.", got)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Job 1: Backend Engineer at Acme")
	assert.Contains(t, prompt, "Job 2: Data Analyst at Globex")
	assert.Contains(t, prompt, "Overall job attractiveness")
	assert.Equal(t, TierStandard, client.tiers[0])
}
