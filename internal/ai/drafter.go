package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kellerh/ai-procurement/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const drafterSystemMessage = `You are an AI RFP generation agent. Your job is to extract relevant details from a
procurement request and generate a comprehensive Request for Proposal (RFP) document.
The RFP should include all necessary sections such as overview, requirements, timeline,
budget, and evaluation criteria.`

// Drafter extracts structured RFP field values from a classified request
type Drafter struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewDrafter creates a new RFP drafter
func NewDrafter(cfg Config, logger *zap.Logger) *Drafter {
	return &Drafter{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger,
	}
}

// Draft maps the request and its classification to template field values.
// The model may omit fields or return non-string values; callers default
// missing fields to empty strings before rendering.
func (d *Drafter) Draft(ctx context.Context, request models.ProcurementRequest, classification models.Classification) (map[string]string, error) {
	d.logger.Info("Drafting RFP fields",
		zap.String("request_id", request.ID),
		zap.String("category", classification.Category.String()))

	prompt := d.buildPrompt(request, classification)

	var raw map[string]json.RawMessage
	if err := chatJSON(ctx, d.client, d.cfg, 0.2, drafterSystemMessage, prompt, &raw, d.logger); err != nil {
		d.logger.Error("RFP drafting failed", zap.String("request_id", request.ID), zap.Error(err))
		return nil, fmt.Errorf("rfp drafting failed: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			fields[key] = s
			continue
		}
		// Numbers and other scalars are carried as their literal text
		fields[key] = string(value)
	}

	d.logger.Debug("Drafted RFP fields", zap.Int("field_count", len(fields)))
	return fields, nil
}

// buildPrompt builds the RFP drafting prompt
func (d *Drafter) buildPrompt(request models.ProcurementRequest, classification models.Classification) string {
	return fmt.Sprintf(`Generate a Request for Proposal (RFP) based on the following procurement request information:

REQUEST TITLE: %s
REQUEST DESCRIPTION: %s
ESTIMATED BUDGET: %s
TIMELINE: %s
DEPARTMENT: %s
REQUESTER: %s
REQUIRED BY DATE: %s
ADDITIONAL NOTES: %s

CATEGORY: %s

Based on this information, extract all relevant details and structure them into an RFP document.
The RFP should follow the standard template for %s categories.

Provide your response in JSON format with the following fields:
- project_overview: A brief overview of the procurement need
- requirements: Detailed specifications or requirements
- timeline: Expected timeline for delivery
- budget: Budget constraints or expectations
- evaluation_criteria: Criteria for evaluating proposals
- submission_instructions: Instructions for suppliers to submit proposals
- quantity: (if applicable) Quantity of items needed
- warranty: (if applicable) Warranty requirements
- sla: (if applicable) Service level requirements
- quality: (if applicable) Quality standards

JSON RESPONSE:`,
		request.Title,
		request.Description,
		orNotSpecified(formatBudget(request.EstimatedBudget)),
		orNotSpecified(request.Timeline),
		orNotSpecified(request.Department),
		orNotSpecified(request.Requester),
		orNotSpecified(formatDate(request.RequiredByDate)),
		orNotSpecified(request.AdditionalNotes),
		classification.Category,
		classification.Category,
	)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func formatBudget(budget *float64) string {
	if budget == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *budget)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
