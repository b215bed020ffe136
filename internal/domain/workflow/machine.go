package workflow

import (
	"context"
	"fmt"
)

// GuardFunc is a predicate that decides whether a transition may proceed
type GuardFunc func(ctx context.Context) bool

// Machine tracks the current workflow state and validates transitions
type Machine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new state if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can be fired in the current state
	PermittedTriggers() []Trigger
}

// transition binds a target state to an optional guard
type transition struct {
	toState State
	guard   GuardFunc
}

// Builder assembles the transition table for a machine
type Builder struct {
	transitions map[State]map[Trigger]transition
}

// StateConfig configures the transitions permitted from a single state
type StateConfig struct {
	builder *Builder
	from    State
}

// NewBuilder creates an empty state machine builder
func NewBuilder() *Builder {
	return &Builder{
		transitions: make(map[State]map[Trigger]transition),
	}
}

// Configure returns the configuration for the given state
func (b *Builder) Configure(state State) *StateConfig {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	if _, ok := b.transitions[state]; !ok {
		b.transitions[state] = make(map[Trigger]transition)
	}
	return &StateConfig{builder: b, from: state}
}

// Permit allows a trigger to transition to the target state
func (c *StateConfig) Permit(trigger Trigger, toState State) *StateConfig {
	return c.PermitIf(trigger, toState, nil)
}

// PermitIf allows a trigger to transition to the target state when the guard passes
func (c *StateConfig) PermitIf(trigger Trigger, toState State, guard GuardFunc) *StateConfig {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.builder.transitions[c.from][trigger] = transition{toState: toState, guard: guard}
	return c
}

// Build creates a machine starting at the given initial state. The
// transition table is copied so later builder mutations cannot affect
// already-built machines.
func (b *Builder) Build(initialState State) Machine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	table := make(map[State]map[Trigger]transition, len(b.transitions))
	for state, byTrigger := range b.transitions {
		rowCopy := make(map[Trigger]transition, len(byTrigger))
		for trigger, t := range byTrigger {
			rowCopy[trigger] = t
		}
		table[state] = rowCopy
	}

	return &machine{current: initialState, transitions: table}
}

// machine implements Machine
type machine struct {
	current     State
	transitions map[State]map[Trigger]transition
}

// State returns the current state
func (m *machine) State() State {
	return m.current
}

// CanFire returns true if the trigger is permitted in the current state.
// Guards are not evaluated here; a guarded transition counts as permitted.
func (m *machine) CanFire(trigger Trigger) bool {
	_, ok := m.transitions[m.current][trigger]
	return ok
}

// Fire attempts to execute the trigger, transitioning to the new state if allowed
func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	t, ok := m.transitions[m.current][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}
	if t.guard != nil && !t.guard(ctx) {
		return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.current)
	}
	m.current = t.toState
	return nil
}

// PermittedTriggers returns all triggers that can be fired in the current state
func (m *machine) PermittedTriggers() []Trigger {
	row := m.transitions[m.current]
	triggers := make([]Trigger, 0, len(row))
	for trigger := range row {
		triggers = append(triggers, trigger)
	}
	return triggers
}

// NewProcurementMachine builds the canonical procurement lifecycle:
// CLASSIFYING -> GENERATING_RFP -> APPROVING_RFP -> {SENDING | REJECTED},
// SENDING -> COMPLETED, with FAIL permitted from every non-terminal state.
func NewProcurementMachine() Machine {
	b := NewBuilder()

	b.Configure(StateClassifying).
		Permit(TriggerClassified, StateGeneratingRFP).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateGeneratingRFP).
		Permit(TriggerRFPGenerated, StateApprovingRFP).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateApprovingRFP).
		Permit(TriggerApprove, StateSending).
		Permit(TriggerReject, StateRejected).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateSending).
		Permit(TriggerSent, StateCompleted).
		Permit(TriggerFail, StateFailed)

	return b.Build(StateClassifying)
}
