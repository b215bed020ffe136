package workflow

import (
	domain "github.com/kellerh/ai-procurement/internal/domain/workflow"
	"github.com/kellerh/ai-procurement/internal/models"
)

// State is the record threaded through the workflow steps. Each step
// receives a snapshot by value and returns a new one; artifacts reached
// through pointers are cloned before a step modifies them, so earlier
// snapshots stay intact for replay and testing.
type State struct {
	Request        models.ProcurementRequest `json:"request"`
	Classification *models.Classification    `json:"classification,omitempty"`
	RFP            *models.RFP               `json:"rfp,omitempty"`
	Approval       *models.ApprovalResult    `json:"approval,omitempty"`
	EmailSent      bool                      `json:"email_sent"`
	Error          string                    `json:"error,omitempty"`
	Status         string                    `json:"status"`
	Phase          domain.State              `json:"phase"`

	failure error
}

// NewState creates the initial workflow state for a request
func NewState(request models.ProcurementRequest) State {
	return State{
		Request: request,
		Status:  "Started procurement workflow",
		Phase:   domain.StateClassifying,
	}
}

// Failed returns true once an error has been recorded; after that the
// workflow routes to the terminal error path and no happy-path step runs.
func (s State) Failed() bool {
	return s.Error != ""
}

// Failure returns the typed cause of the failure, suitable for
// errors.Is checks against the step failure taxonomy. Nil when the
// workflow did not fail.
func (s State) Failure() error {
	return s.failure
}

// withFailure records a step failure on a new snapshot
func (s State) withFailure(err error, status string) State {
	s.failure = err
	s.Error = err.Error()
	s.Status = status
	return s
}
