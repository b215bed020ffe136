package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/kellerh/ai-procurement/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const classifierSystemMessage = `You are an AI procurement classification agent. Your job is to classify procurement requests
into one of the following categories: Software, Hardware, Services, or Raw Materials.
Analyze the request details and determine the most appropriate category.`

// Classifier categorizes procurement requests using the OpenAI API
type Classifier struct {
	client *openai.Client
	cfg    Config
	logger *zap.Logger
}

// NewClassifier creates a new request classifier
func NewClassifier(cfg Config, logger *zap.Logger) *Classifier {
	return &Classifier{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger,
	}
}

// classificationResponse mirrors the JSON shape the prompt requests
type classificationResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify maps a request's free text to a category with a confidence
// score and rationale. The result is always fully populated; any
// transport or parse failure is returned as an error.
func (c *Classifier) Classify(ctx context.Context, request models.ProcurementRequest) (*models.Classification, error) {
	c.logger.Info("Classifying procurement request",
		zap.String("request_id", request.ID),
		zap.String("title", request.Title))

	prompt := c.buildPrompt(request)

	var resp classificationResponse
	if err := chatJSON(ctx, c.client, c.cfg, 0, classifierSystemMessage, prompt, &resp, c.logger); err != nil {
		c.logger.Error("Classification failed", zap.String("request_id", request.ID), zap.Error(err))
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	if resp.Category == "" {
		return nil, fmt.Errorf("classification response missing category")
	}
	if resp.Confidence < 0 || resp.Confidence > 1 {
		return nil, fmt.Errorf("classification confidence %.2f outside [0,1]", resp.Confidence)
	}

	classification := &models.Classification{
		RequestID:  request.ID,
		Category:   models.ParseCategory(resp.Category),
		Confidence: resp.Confidence,
		Reasoning:  resp.Reasoning,
	}

	c.logger.Info("Classification completed",
		zap.String("request_id", request.ID),
		zap.String("category", classification.Category.String()),
		zap.Float64("confidence", classification.Confidence))

	return classification, nil
}

// buildPrompt builds the classification prompt
func (c *Classifier) buildPrompt(request models.ProcurementRequest) string {
	categories := make([]string, 0, len(models.KnownCategories()))
	for _, cat := range models.KnownCategories() {
		categories = append(categories, cat.String())
	}

	notes := request.AdditionalNotes
	if notes == "" {
		notes = "None"
	}

	return fmt.Sprintf(`Please analyze the following procurement request and classify it into one of these categories: %s.

REQUEST TITLE: %s
REQUEST DESCRIPTION: %s
ADDITIONAL NOTES: %s

Provide your response in JSON format with the following fields:
- category: The selected category
- confidence: A numerical score between 0 and 1 indicating your confidence in the classification
- reasoning: A brief explanation of why you selected this category

Note: if the request does not fit any of the above categories, please assign a new category to the request based on the contents.

JSON RESPONSE:`,
		strings.Join(categories, ", "),
		request.Title,
		request.Description,
		notes,
	)
}
