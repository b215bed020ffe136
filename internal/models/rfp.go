package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RFPStatus represents the lifecycle status of an RFP document
type RFPStatus string

const (
	RFPStatusDraft           RFPStatus = "DRAFT"
	RFPStatusPendingApproval RFPStatus = "PENDING_APPROVAL"
	RFPStatusApproved        RFPStatus = "APPROVED"
	RFPStatusRejected        RFPStatus = "REJECTED"
	RFPStatusSent            RFPStatus = "SENT"
	RFPStatusCancelled       RFPStatus = "CANCELLED"
)

// validRFPTransitions encodes the monotonic forward-only lifecycle:
// DRAFT -> PENDING_APPROVAL -> {APPROVED|REJECTED} -> SENT. No transition
// back to an earlier state is valid. CANCELLED is reachable from any
// non-terminal state.
var validRFPTransitions = map[RFPStatus][]RFPStatus{
	RFPStatusDraft:           {RFPStatusPendingApproval, RFPStatusCancelled},
	RFPStatusPendingApproval: {RFPStatusApproved, RFPStatusRejected, RFPStatusCancelled},
	RFPStatusApproved:        {RFPStatusSent, RFPStatusCancelled},
	RFPStatusRejected:        {},
	RFPStatusSent:            {},
	RFPStatusCancelled:       {},
}

// IsTerminal returns true if no further status transitions are allowed
func (s RFPStatus) IsTerminal() bool {
	return len(validRFPTransitions[s]) == 0
}

// CanTransitionTo returns true if the transition to the target status is valid
func (s RFPStatus) CanTransitionTo(target RFPStatus) bool {
	for _, allowed := range validRFPTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status
func (s RFPStatus) String() string {
	return string(s)
}

// Supplier represents an external party eligible to receive a sent RFP
type Supplier struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

// RFP represents a Request for Proposal document generated from a
// classified procurement request.
type RFP struct {
	ID               string     `json:"id"`
	RequestID        string     `json:"request_id"`
	Title            string     `json:"title"`
	Category         Category   `json:"category"`
	Content          string     `json:"content"`
	Status           RFPStatus  `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Suppliers        []Supplier `json:"suppliers,omitempty"`
	ApprovalFeedback string     `json:"approval_feedback,omitempty"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	SentDate         *time.Time `json:"sent_date,omitempty"`
}

// NewRFP creates an RFP for a request in PENDING_APPROVAL status
func NewRFP(requestID string, title string, category Category, content string) *RFP {
	now := time.Now()
	return &RFP{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Title:     title,
		Category:  category,
		Content:   content,
		Status:    RFPStatusPendingApproval,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition moves the RFP to the target status, enforcing the monotonic
// lifecycle. UpdatedAt is stamped on every successful transition.
func (r *RFP) Transition(target RFPStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return fmt.Errorf("invalid RFP status transition %s -> %s", r.Status, target)
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}

// ApprovalResult represents the outcome of validating an RFP. Issues hold
// the model-reported problems first, with guardrail violations appended
// after them in the order they were checked.
type ApprovalResult struct {
	RFPID    string   `json:"rfp_id"`
	Approved bool     `json:"approved"`
	Feedback string   `json:"feedback"`
	Issues   []string `json:"issues,omitempty"`
}
