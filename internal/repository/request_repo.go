package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/pkg/database"
	"go.uber.org/zap"
)

// RequestRepository archives procurement requests
type RequestRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *database.DB, logger *zap.Logger) *RequestRepository {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a procurement request
func (r *RequestRepository) Create(ctx context.Context, request *models.ProcurementRequest) error {
	query := `
		INSERT INTO procurement_requests (
			id, title, description, estimated_budget, timeline,
			department, requester, required_by_date, additional_notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		request.ID,
		request.Title,
		request.Description,
		request.EstimatedBudget,
		request.Timeline,
		request.Department,
		request.Requester,
		request.RequiredByDate,
		request.AdditionalNotes,
		request.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// GetByID retrieves a procurement request by ID, or nil if absent
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.ProcurementRequest, error) {
	query := `
		SELECT id, title, description, estimated_budget, timeline,
			department, requester, required_by_date, additional_notes, created_at
		FROM procurement_requests
		WHERE id = ?
	`

	request, err := scanRequest(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get request by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return request, nil
}

// List retrieves requests ordered by creation time, newest first
func (r *RequestRepository) List(ctx context.Context, limit int) ([]*models.ProcurementRequest, error) {
	query := `
		SELECT id, title, description, estimated_budget, timeline,
			department, requester, required_by_date, additional_notes, created_at
		FROM procurement_requests
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ProcurementRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*models.ProcurementRequest, error) {
	var request models.ProcurementRequest
	var budget sql.NullFloat64
	var requiredBy sql.NullTime

	err := s.Scan(
		&request.ID,
		&request.Title,
		&request.Description,
		&budget,
		&request.Timeline,
		&request.Department,
		&request.Requester,
		&requiredBy,
		&request.AdditionalNotes,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if budget.Valid {
		request.EstimatedBudget = &budget.Float64
	}
	if requiredBy.Valid {
		request.RequiredByDate = &requiredBy.Time
	}

	return &request, nil
}
