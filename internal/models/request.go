package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcurementRequest represents a procurement request submitted by a user.
// A request is immutable once created; steps downstream only read it.
type ProcurementRequest struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EstimatedBudget *float64   `json:"estimated_budget,omitempty"`
	Timeline        string     `json:"timeline,omitempty"`
	Department      string     `json:"department,omitempty"`
	Requester       string     `json:"requester,omitempty"`
	RequiredByDate  *time.Time `json:"required_by_date,omitempty"`
	AdditionalNotes string     `json:"additional_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewProcurementRequest creates a request with a generated ID and creation time
func NewProcurementRequest(title, description string) ProcurementRequest {
	return ProcurementRequest{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// EnsureID assigns a generated ID if the request does not have one yet
func (r *ProcurementRequest) EnsureID() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
}

// Classification represents the result of classifying a procurement request.
// Created once per request; never mutated.
type Classification struct {
	RequestID  string   `json:"request_id"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}
