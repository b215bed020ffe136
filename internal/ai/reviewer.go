package ai

import (
	"context"
	"fmt"

	"github.com/kellerh/ai-procurement/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const reviewerSystemMessage = `You are an AI approval agent for procurement requests. Your job is to validate RFP documents
before they are sent to suppliers. Check for completeness, clarity, compliance with standards,
and any potential issues or anomalies. Provide clear feedback if revisions are needed.`

// Reviewer evaluates an RFP for completeness and compliance. Its verdict
// is tentative; deterministic guardrails run after it and can only
// tighten the outcome.
type Reviewer struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewReviewer creates a new RFP reviewer
func NewReviewer(cfg Config, logger *zap.Logger) *Reviewer {
	return &Reviewer{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger,
	}
}

// reviewResponse mirrors the JSON shape the prompt requests
type reviewResponse struct {
	Approved bool     `json:"approved"`
	Feedback string   `json:"feedback"`
	Issues   []string `json:"issues"`
}

// Review produces the model's tentative approval verdict for the RFP
func (r *Reviewer) Review(ctx context.Context, rfp *models.RFP) (*models.ApprovalResult, error) {
	r.logger.Info("Reviewing RFP",
		zap.String("rfp_id", rfp.ID),
		zap.String("category", rfp.Category.String()))

	prompt := r.buildPrompt(rfp)

	var resp reviewResponse
	if err := chatJSON(ctx, r.client, r.cfg, 0, reviewerSystemMessage, prompt, &resp, r.logger); err != nil {
		r.logger.Error("RFP review failed", zap.String("rfp_id", rfp.ID), zap.Error(err))
		return nil, fmt.Errorf("rfp review failed: %w", err)
	}

	result := &models.ApprovalResult{
		RFPID:    rfp.ID,
		Approved: resp.Approved,
		Feedback: resp.Feedback,
		Issues:   resp.Issues,
	}

	r.logger.Info("RFP review completed",
		zap.String("rfp_id", rfp.ID),
		zap.Bool("approved", result.Approved),
		zap.Int("issue_count", len(result.Issues)))

	return result, nil
}

// buildPrompt builds the RFP validation prompt
func (r *Reviewer) buildPrompt(rfp *models.RFP) string {
	return fmt.Sprintf(`Please validate the following Request for Proposal (RFP) document:

RFP TITLE: %s
RFP CATEGORY: %s
RFP CONTENT:
%s

Check for the following aspects:
1. Completeness: Does the RFP include all necessary sections?
2. Clarity: Are the requirements clearly stated?
3. Specificity: Are the specifications detailed enough for suppliers?
4. Timeline: Is the timeline reasonable and clearly defined?
5. Budget: Are budget expectations clear and reasonable?
6. Compliance: Does the RFP comply with standard procurement practices?
7. Anomalies: Are there any unusual requests or red flags?

Provide your response in JSON format with the following fields:
- approved: Boolean indicating whether the RFP is approved (true) or rejected (false)
- feedback: Overall feedback on the RFP
- issues: A list of specific issues that need to be addressed (if any)

Note: Too restrictive validation may lead to rejection of valid RFPs. Please use your discretion and allow the majority of reasonable RFPs to pass through.

JSON RESPONSE:`,
		rfp.Title,
		rfp.Category,
		rfp.Content,
	)
}
