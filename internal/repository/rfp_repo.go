package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/pkg/database"
	"go.uber.org/zap"
)

// RFPRepository archives generated RFP documents
type RFPRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRFPRepository creates a new RFP repository
func NewRFPRepository(db *database.DB, logger *zap.Logger) *RFPRepository {
	return &RFPRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores an RFP, serializing suppliers as JSON
func (r *RFPRepository) Create(ctx context.Context, rfp *models.RFP) error {
	suppliers, err := json.Marshal(rfp.Suppliers)
	if err != nil {
		return fmt.Errorf("failed to marshal suppliers: %w", err)
	}

	query := `
		INSERT INTO rfps (
			id, request_id, title, category, content, status, suppliers,
			approval_feedback, approval_date, sent_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Executor(ctx).ExecContext(ctx, query,
		rfp.ID,
		rfp.RequestID,
		rfp.Title,
		string(rfp.Category),
		rfp.Content,
		string(rfp.Status),
		string(suppliers),
		rfp.ApprovalFeedback,
		rfp.ApprovalDate,
		rfp.SentDate,
		rfp.CreatedAt,
		rfp.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create RFP", zap.Error(err))
		return fmt.Errorf("failed to create rfp: %w", err)
	}

	return nil
}

// GetByID retrieves an RFP by ID, or nil if absent
func (r *RFPRepository) GetByID(ctx context.Context, id string) (*models.RFP, error) {
	query := selectRFP + ` WHERE id = ?`

	rfp, err := scanRFP(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get RFP by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get rfp: %w", err)
	}

	return rfp, nil
}

// GetByRequestID retrieves the RFPs generated for a request
func (r *RFPRepository) GetByRequestID(ctx context.Context, requestID string) ([]*models.RFP, error) {
	query := selectRFP + ` WHERE request_id = ? ORDER BY created_at DESC`

	return r.queryRFPs(ctx, query, requestID)
}

// List retrieves RFPs, optionally filtered by status
func (r *RFPRepository) List(ctx context.Context, status models.RFPStatus, limit int) ([]*models.RFP, error) {
	if status != "" {
		query := selectRFP + ` WHERE status = ? ORDER BY created_at DESC LIMIT ?`
		return r.queryRFPs(ctx, query, string(status), limit)
	}

	query := selectRFP + ` ORDER BY created_at DESC LIMIT ?`
	return r.queryRFPs(ctx, query, limit)
}

const selectRFP = `
	SELECT id, request_id, title, category, content, status, suppliers,
		approval_feedback, approval_date, sent_date, created_at, updated_at
	FROM rfps`

func (r *RFPRepository) queryRFPs(ctx context.Context, query string, args ...interface{}) ([]*models.RFP, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query RFPs", zap.Error(err))
		return nil, fmt.Errorf("failed to query rfps: %w", err)
	}
	defer rows.Close()

	var rfps []*models.RFP
	for rows.Next() {
		rfp, err := scanRFP(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rfp: %w", err)
		}
		rfps = append(rfps, rfp)
	}

	return rfps, rows.Err()
}

func scanRFP(s scanner) (*models.RFP, error) {
	var rfp models.RFP
	var category, status, suppliers string
	var approvalDate, sentDate sql.NullTime

	err := s.Scan(
		&rfp.ID,
		&rfp.RequestID,
		&rfp.Title,
		&category,
		&rfp.Content,
		&status,
		&suppliers,
		&rfp.ApprovalFeedback,
		&approvalDate,
		&sentDate,
		&rfp.CreatedAt,
		&rfp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rfp.Category = models.Category(category)
	rfp.Status = models.RFPStatus(status)
	if approvalDate.Valid {
		rfp.ApprovalDate = &approvalDate.Time
	}
	if sentDate.Valid {
		rfp.SentDate = &sentDate.Time
	}
	if suppliers != "" {
		if err := json.Unmarshal([]byte(suppliers), &rfp.Suppliers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal suppliers: %w", err)
		}
	}

	return &rfp, nil
}
