package workflow

// State represents a phase of the procurement workflow lifecycle
type State string

const (
	StateClassifying   State = "CLASSIFYING"
	StateGeneratingRFP State = "GENERATING_RFP"
	StateApprovingRFP  State = "APPROVING_RFP"
	StateSending       State = "SENDING"
	StateCompleted     State = "COMPLETED"
	StateRejected      State = "REJECTED"
	StateFailed        State = "FAILED"
)

var validStates = map[State]bool{
	StateClassifying:   true,
	StateGeneratingRFP: true,
	StateApprovingRFP:  true,
	StateSending:       true,
	StateCompleted:     true,
	StateRejected:      true,
	StateFailed:        true,
}

var terminalStates = map[State]bool{
	StateCompleted: true,
	StateRejected:  true,
	StateFailed:    true,
}

// IsTerminal returns true if the state is terminal (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
