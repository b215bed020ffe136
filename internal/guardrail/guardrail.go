// Package guardrail applies deterministic policy rules to AI approval
// verdicts. Rules only tighten a verdict: an approval can be forced to a
// rejection, never the reverse.
package guardrail

import (
	"fmt"
	"strings"

	"github.com/kellerh/ai-procurement/internal/models"
	"go.uber.org/zap"
)

// essentialSections must each appear in the RFP content, checked as
// case-insensitive substrings in this order.
var essentialSections = []string{"Overview", "Requirements", "Timeline", "Budget"}

// Config holds the guardrail thresholds
type Config struct {
	// MaxBudget is the auto-approval budget cap. Extracted budgets
	// strictly above it force a rejection.
	MaxBudget float64

	// MinTimelineDays is carried in the configuration surface but no
	// rule consumes it yet; the timeline rule was never specified.
	MinTimelineDays int
}

// DefaultConfig returns the default guardrail thresholds
func DefaultConfig() Config {
	return Config{
		MaxBudget:       1000000,
		MinTimelineDays: 7,
	}
}

// Validate ensures the thresholds are usable
func (c Config) Validate() error {
	if c.MaxBudget <= 0 {
		return fmt.Errorf("guardrail max_budget must be positive, got %.2f", c.MaxBudget)
	}
	if c.MinTimelineDays < 0 {
		return fmt.Errorf("guardrail min_timeline_days must not be negative, got %d", c.MinTimelineDays)
	}
	return nil
}

// Engine evaluates guardrail rules against an RFP
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a guardrail engine
func New(cfg Config, logger *zap.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Apply evaluates the rules against the RFP content and returns the
// tightened approval result. Guardrail issues are appended after the
// model-supplied issues; the input result is not mutated. Given the same
// content and configuration the output is deterministic.
func (e *Engine) Apply(rfp *models.RFP, result models.ApprovalResult) models.ApprovalResult {
	issues := make([]string, len(result.Issues), len(result.Issues)+len(essentialSections)+1)
	copy(issues, result.Issues)

	budget := ExtractBudget(rfp.Content)
	if budget > e.cfg.MaxBudget {
		result.Approved = false
		issues = append(issues, fmt.Sprintf("Budget exceeds maximum allowed threshold of $%s", formatAmount(e.cfg.MaxBudget)))
		e.logger.Warn("Guardrail rejected RFP over budget cap",
			zap.String("rfp_id", rfp.ID),
			zap.Float64("budget", budget),
			zap.Float64("max_budget", e.cfg.MaxBudget))
	}

	lowerContent := strings.ToLower(rfp.Content)
	for _, section := range essentialSections {
		if !strings.Contains(lowerContent, strings.ToLower(section)) {
			result.Approved = false
			issues = append(issues, fmt.Sprintf("Missing essential section: %s", section))
			e.logger.Warn("Guardrail flagged missing section",
				zap.String("rfp_id", rfp.ID),
				zap.String("section", section))
		}
	}

	result.Issues = issues
	return result
}
