package models

import "time"

// WorkflowRun records the outcome of one workflow execution
type WorkflowRun struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	RFPID      string    `json:"rfp_id,omitempty"`
	Phase      string    `json:"phase"`
	Status     string    `json:"status"`
	Category   string    `json:"category,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	EmailSent  bool      `json:"email_sent"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
