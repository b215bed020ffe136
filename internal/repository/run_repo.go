package repository

import (
	"context"
	"fmt"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/pkg/database"
	"go.uber.org/zap"
)

// RunRepository records workflow execution outcomes
type RunRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *database.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a completed workflow run
func (r *RunRepository) Create(ctx context.Context, run *models.WorkflowRun) error {
	query := `
		INSERT INTO workflow_runs (
			request_id, rfp_id, phase, status, category, confidence, email_sent, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		run.RequestID,
		run.RFPID,
		run.Phase,
		run.Status,
		run.Category,
		run.Confidence,
		run.EmailSent,
		run.Error,
	)
	if err != nil {
		r.logger.Error("Failed to create workflow run", zap.Error(err))
		return fmt.Errorf("failed to create workflow run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	run.ID = id
	return nil
}

// GetByRequestID retrieves run records for a request, newest first
func (r *RunRepository) GetByRequestID(ctx context.Context, requestID string) ([]*models.WorkflowRun, error) {
	query := `
		SELECT id, request_id, rfp_id, phase, status, category, confidence,
			email_sent, error, created_at
		FROM workflow_runs
		WHERE request_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, requestID)
	if err != nil {
		r.logger.Error("Failed to query workflow runs", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to query workflow runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.WorkflowRun
	for rows.Next() {
		var run models.WorkflowRun
		err := rows.Scan(
			&run.ID,
			&run.RequestID,
			&run.RFPID,
			&run.Phase,
			&run.Status,
			&run.Category,
			&run.Confidence,
			&run.EmailSent,
			&run.Error,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow run: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
