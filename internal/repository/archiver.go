package repository

import (
	"context"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/internal/workflow"
	"github.com/kellerh/ai-procurement/pkg/database"
	"go.uber.org/zap"
)

// Archiver persists the artifacts of a finished workflow run atomically
type Archiver struct {
	db       *database.DB
	requests *RequestRepository
	rfps     *RFPRepository
	runs     *RunRepository
	logger   *zap.Logger
}

// NewArchiver creates a new archiver
func NewArchiver(db *database.DB, requests *RequestRepository, rfps *RFPRepository, runs *RunRepository, logger *zap.Logger) *Archiver {
	return &Archiver{
		db:       db,
		requests: requests,
		rfps:     rfps,
		runs:     runs,
		logger:   logger,
	}
}

// ArchiveRun stores the request, the RFP if one was generated, and the
// run record in a single transaction
func (a *Archiver) ArchiveRun(ctx context.Context, state workflow.State) error {
	run := &models.WorkflowRun{
		RequestID: state.Request.ID,
		Phase:     state.Phase.String(),
		Status:    state.Status,
		EmailSent: state.EmailSent,
		Error:     state.Error,
	}
	if state.Classification != nil {
		run.Category = string(state.Classification.Category)
		run.Confidence = state.Classification.Confidence
	}
	if state.RFP != nil {
		run.RFPID = state.RFP.ID
	}

	err := a.db.WithTransaction(ctx, func(ctx context.Context) error {
		if err := a.requests.Create(ctx, &state.Request); err != nil {
			return err
		}
		if state.RFP != nil {
			if err := a.rfps.Create(ctx, state.RFP); err != nil {
				return err
			}
		}
		return a.runs.Create(ctx, run)
	})
	if err != nil {
		a.logger.Error("Failed to archive workflow run",
			zap.String("request_id", state.Request.ID),
			zap.Error(err))
		return err
	}

	a.logger.Info("Workflow run archived",
		zap.String("request_id", state.Request.ID),
		zap.String("phase", state.Phase.String()))
	return nil
}
