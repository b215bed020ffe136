package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	TriggerClassified   Trigger = "CLASSIFIED"
	TriggerRFPGenerated Trigger = "RFP_GENERATED"
	TriggerApprove      Trigger = "APPROVE"
	TriggerReject       Trigger = "REJECT"
	TriggerSent         Trigger = "SENT"
	TriggerFail         Trigger = "FAIL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
