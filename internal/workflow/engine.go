// Package workflow orchestrates the procurement pipeline: classify the
// request, draft an RFP, validate it against the reviewer and guardrails,
// and deliver approved RFPs to suppliers. Execution is strictly
// sequential with no retries; every failure is terminal for that run.
package workflow

import (
	"context"
	"fmt"
	"time"

	domain "github.com/kellerh/ai-procurement/internal/domain/workflow"
	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/internal/rfp"
	"go.uber.org/zap"
)

// Classifier maps a request's free text to a category with confidence
// and rationale
type Classifier interface {
	Classify(ctx context.Context, request models.ProcurementRequest) (*models.Classification, error)
}

// Drafter maps a classified request to RFP template field values
type Drafter interface {
	Draft(ctx context.Context, request models.ProcurementRequest, classification models.Classification) (map[string]string, error)
}

// Reviewer produces a tentative approval verdict for an RFP
type Reviewer interface {
	Review(ctx context.Context, rfp *models.RFP) (*models.ApprovalResult, error)
}

// Guardrail tightens a tentative approval verdict with deterministic rules
type Guardrail interface {
	Apply(rfp *models.RFP, result models.ApprovalResult) models.ApprovalResult
}

// Deliverer sends an approved RFP to its suppliers. The boolean reports
// whether every supplier delivery succeeded.
type Deliverer interface {
	SendToSuppliers(ctx context.Context, rfp *models.RFP) (bool, error)
}

// Engine runs the procurement workflow
type Engine struct {
	classifier Classifier
	drafter    Drafter
	reviewer   Reviewer
	guardrail  Guardrail
	deliverer  Deliverer
	logger     *zap.Logger
}

// NewEngine creates a workflow engine
func NewEngine(
	classifier Classifier,
	drafter Drafter,
	reviewer Reviewer,
	guardrail Guardrail,
	deliverer Deliverer,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		classifier: classifier,
		drafter:    drafter,
		reviewer:   reviewer,
		guardrail:  guardrail,
		deliverer:  deliverer,
		logger:     logger,
	}
}

// Execute runs the workflow for a single request and always returns a
// final state; the caller inspects State.Error to detect failure. The
// supplied suppliers are attached to the generated RFP and receive it
// if it is approved.
func (e *Engine) Execute(ctx context.Context, request models.ProcurementRequest, suppliers []models.Supplier) State {
	request.EnsureID()

	e.logger.Info("Starting procurement workflow",
		zap.String("request_id", request.ID),
		zap.String("title", request.Title))

	machine := domain.NewProcurementMachine()
	state := NewState(request)

	state = e.classify(ctx, state)
	if state.Failed() {
		return e.fail(ctx, machine, state)
	}
	e.fire(ctx, machine, domain.TriggerClassified)

	state = e.generateRFP(ctx, state, suppliers)
	if state.Failed() {
		return e.fail(ctx, machine, state)
	}
	e.fire(ctx, machine, domain.TriggerRFPGenerated)

	state = e.approveRFP(ctx, state)
	if state.Failed() {
		return e.fail(ctx, machine, state)
	}

	if state.Approval == nil || !state.Approval.Approved {
		e.fire(ctx, machine, domain.TriggerReject)
		state.Phase = machine.State()
		e.logger.Info("Workflow finished with rejected RFP",
			zap.String("request_id", request.ID),
			zap.String("status", state.Status))
		return state
	}
	e.fire(ctx, machine, domain.TriggerApprove)

	state = e.sendRFP(ctx, state)
	if state.Failed() {
		return e.fail(ctx, machine, state)
	}
	e.fire(ctx, machine, domain.TriggerSent)

	state.Phase = machine.State()
	e.logger.Info("Workflow completed",
		zap.String("request_id", request.ID),
		zap.Bool("email_sent", state.EmailSent),
		zap.String("status", state.Status))
	return state
}

// classify runs the classification step
func (e *Engine) classify(ctx context.Context, state State) State {
	classification, err := e.classifier.Classify(ctx, state.Request)
	if err != nil {
		return state.withFailure(
			fmt.Errorf("%w: %v", ErrClassification, err),
			"Error during classification",
		)
	}
	if classification == nil {
		// Never let a nil classification flow downstream
		return state.withFailure(
			fmt.Errorf("%w: classifier returned no result", ErrClassification),
			"Error: Classification failed",
		)
	}

	state.Classification = classification
	state.Status = fmt.Sprintf("Classified as %s with %.2f confidence",
		classification.Category, classification.Confidence)
	return state
}

// generateRFP runs the RFP generation step
func (e *Engine) generateRFP(ctx context.Context, state State, suppliers []models.Supplier) State {
	if state.Classification == nil {
		return state.withFailure(ErrMissingClassification, "Error: Classification failed")
	}

	fields, err := e.drafter.Draft(ctx, state.Request, *state.Classification)
	if err != nil {
		return state.withFailure(
			fmt.Errorf("%w: %v", ErrRFPGeneration, err),
			"Error during RFP generation",
		)
	}

	content, err := rfp.Render(state.Classification.Category, fields)
	if err != nil {
		return state.withFailure(
			fmt.Errorf("%w: %v", ErrRFPGeneration, err),
			"Error during RFP generation",
		)
	}

	doc := models.NewRFP(
		state.Request.ID,
		fmt.Sprintf("RFP for %s", state.Request.Title),
		state.Classification.Category,
		content,
	)
	doc.Suppliers = suppliers

	state.RFP = doc
	state.Status = fmt.Sprintf("RFP generated for %s", state.Classification.Category)
	return state
}

// approveRFP runs the review step and applies the guardrails. The RFP is
// cloned before its status is stamped so earlier snapshots are unchanged.
func (e *Engine) approveRFP(ctx context.Context, state State) State {
	if state.RFP == nil {
		return state.withFailure(
			fmt.Errorf("%w: no RFP to validate", ErrApproval),
			"Error: No RFP to validate",
		)
	}

	tentative, err := e.reviewer.Review(ctx, state.RFP)
	if err != nil {
		return state.withFailure(
			fmt.Errorf("%w: %v", ErrApproval, err),
			"Error during RFP approval",
		)
	}
	if tentative == nil {
		// Defensive default: a missing verdict routes as rejected, but
		// the status distinguishes it from an explicit rejection.
		e.logger.Warn("Reviewer returned no approval result, routing as rejected",
			zap.String("rfp_id", state.RFP.ID))
		state.Status = "RFP rejected: no approval result available"
		return state
	}

	final := e.guardrail.Apply(state.RFP, *tentative)

	doc := *state.RFP
	doc.ApprovalFeedback = final.Feedback
	if final.Approved {
		if err := doc.Transition(models.RFPStatusApproved); err != nil {
			return state.withFailure(fmt.Errorf("%w: %v", ErrApproval, err), "Error during RFP approval")
		}
		now := time.Now()
		doc.ApprovalDate = &now
		state.Status = "RFP approved"
	} else {
		if err := doc.Transition(models.RFPStatusRejected); err != nil {
			return state.withFailure(fmt.Errorf("%w: %v", ErrApproval, err), "Error during RFP approval")
		}
		state.Status = fmt.Sprintf("RFP rejected: %s", final.Feedback)
	}

	state.RFP = &doc
	state.Approval = &final
	return state
}

// sendRFP runs the delivery step for an approved RFP
func (e *Engine) sendRFP(ctx context.Context, state State) State {
	if len(state.RFP.Suppliers) == 0 {
		e.logger.Warn("No suppliers specified for RFP, skipping delivery",
			zap.String("rfp_id", state.RFP.ID))
		state.EmailSent = false
		state.Status = "No suppliers specified. RFP not sent."
		return state
	}

	doc := *state.RFP
	success, err := e.deliverer.SendToSuppliers(ctx, &doc)
	if err != nil {
		state.EmailSent = false
		return state.withFailure(
			fmt.Errorf("%w: %v", ErrDelivery, err),
			"Error during email sending",
		)
	}

	state.RFP = &doc
	state.EmailSent = success
	if success {
		state.Status = "RFP sent to suppliers"
	} else {
		state.Status = "Failed to send RFP to suppliers"
	}
	return state
}

// fail routes the workflow to the terminal error path
func (e *Engine) fail(ctx context.Context, machine domain.Machine, state State) State {
	e.fire(ctx, machine, domain.TriggerFail)
	state.Phase = machine.State()
	state.Status = fmt.Sprintf("Workflow failed: %s", state.Error)
	e.logger.Error("Workflow failed",
		zap.String("request_id", state.Request.ID),
		zap.String("error", state.Error))
	return state
}

// fire advances the lifecycle machine; a refused transition indicates a
// bug in the engine sequencing, not a runtime condition.
func (e *Engine) fire(ctx context.Context, machine domain.Machine, trigger domain.Trigger) {
	if err := machine.Fire(ctx, trigger); err != nil {
		e.logger.Error("Lifecycle transition refused",
			zap.String("trigger", trigger.String()),
			zap.String("state", machine.State().String()),
			zap.Error(err))
	}
}
