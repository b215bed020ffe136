package guardrail

import (
	"fmt"
	"testing"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const completeContent = `# REQUEST FOR PROPOSAL: SOFTWARE PROCUREMENT
## Project Overview
A CRM platform for the sales team.

## Requirements
Cloud hosted, 200 seats.

## Timeline
Delivery within 90 days.

## Budget
$250,000 total.
`

func testRFP(content string) *models.RFP {
	return models.NewRFP("req-1", "RFP for CRM Platform", models.CategorySoftware, content)
}

func approvedResult(rfpID string) models.ApprovalResult {
	return models.ApprovalResult{
		RFPID:    rfpID,
		Approved: true,
		Feedback: "Looks complete and reasonable.",
	}
}

func TestEngine_Apply_PassesCompleteRFP(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP(completeContent)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.True(t, result.Approved)
	assert.Empty(t, result.Issues)
}

func TestEngine_Apply_RejectsOverBudget(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	content := `## Project Overview
one
## Requirements
two
## Timeline
three
## Budget
$2,500,000 total spend.
`
	rfp := testRFP(content)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.False(t, result.Approved)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "Budget exceeds maximum allowed threshold of $1,000,000.00", result.Issues[0])
}

func TestEngine_Apply_MissingSectionsInCheckedOrder(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP("This document has none of the required parts.")

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.False(t, result.Approved)
	require.Len(t, result.Issues, 4)
	assert.Equal(t, []string{
		"Missing essential section: Overview",
		"Missing essential section: Requirements",
		"Missing essential section: Timeline",
		"Missing essential section: Budget",
	}, result.Issues)
}

func TestEngine_Apply_SingleMissingSection(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	content := `## Project Overview
servers
## Technical Specifications and Requirements
racks
## Budget
$90,000
`
	rfp := testRFP(content)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.False(t, result.Approved)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "Missing essential section: Timeline", result.Issues[0])
}

func TestEngine_Apply_SectionCheckIsCaseInsensitive(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	content := "overview, REQUIREMENTS, timeline and bUdGeT of $10 all present."
	rfp := testRFP(content)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.True(t, result.Approved)
	assert.Empty(t, result.Issues)
}

func TestEngine_Apply_AppendsAfterModelIssues(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP("Overview, Requirements and Budget: $5,000,000.")

	modelResult := models.ApprovalResult{
		RFPID:    rfp.ID,
		Approved: false,
		Feedback: "Vague requirements.",
		Issues:   []string{"Requirements lack measurable acceptance criteria"},
	}

	result := engine.Apply(rfp, modelResult)

	assert.False(t, result.Approved)
	require.Len(t, result.Issues, 3)
	assert.Equal(t, "Requirements lack measurable acceptance criteria", result.Issues[0])
	assert.Equal(t, "Budget exceeds maximum allowed threshold of $1,000,000.00", result.Issues[1])
	assert.Equal(t, "Missing essential section: Timeline", result.Issues[2])
}

func TestEngine_Apply_NeverLoosensModelRejection(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP(completeContent)

	modelResult := models.ApprovalResult{
		RFPID:    rfp.ID,
		Approved: false,
		Feedback: "Unclear evaluation criteria.",
		Issues:   []string{"Evaluation criteria section is ambiguous"},
	}

	result := engine.Apply(rfp, modelResult)

	assert.False(t, result.Approved, "guardrails must never flip a rejection to an approval")
	assert.Equal(t, []string{"Evaluation criteria section is ambiguous"}, result.Issues)
}

func TestEngine_Apply_DoesNotMutateInput(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP("nothing useful here")

	input := models.ApprovalResult{
		RFPID:    rfp.ID,
		Approved: true,
		Issues:   []string{"model issue"},
	}

	_ = engine.Apply(rfp, input)

	assert.Equal(t, []string{"model issue"}, input.Issues)
}

func TestEngine_Apply_IsIdempotent(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	rfp := testRFP("Overview only, with a budget of $3,000,000.")

	first := engine.Apply(rfp, approvedResult(rfp.ID))
	second := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.Equal(t, first, second)
}

func TestEngine_Apply_ZeroBudgetDoesNotBlock(t *testing.T) {
	engine := New(DefaultConfig(), zap.NewNop())
	content := "Overview, Requirements, Timeline and Budget sections present, no figures."
	rfp := testRFP(content)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.True(t, result.Approved)
	assert.Empty(t, result.Issues)
}

func TestEngine_Apply_CustomThreshold(t *testing.T) {
	cfg := Config{MaxBudget: 50000, MinTimelineDays: 7}
	engine := New(cfg, zap.NewNop())
	content := "Overview Requirements Timeline Budget: $60,000"
	rfp := testRFP(content)

	result := engine.Apply(rfp, approvedResult(rfp.ID))

	assert.False(t, result.Approved)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, fmt.Sprintf("Budget exceeds maximum allowed threshold of $%s", "50,000.00"), result.Issues[0])
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"defaults are valid", DefaultConfig(), false},
		{"zero budget cap", Config{MaxBudget: 0, MinTimelineDays: 7}, true},
		{"negative timeline", Config{MaxBudget: 1000, MinTimelineDays: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
