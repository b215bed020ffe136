package workflow

import "errors"

// Step failure taxonomy. Steps never raise past their boundary: each
// failure is wrapped with one of these sentinels and written into the
// returned state, so every execution yields a final state object.
var (
	// ErrClassification is the cause when the classification capability fails
	ErrClassification = errors.New("classification error")

	// ErrMissingClassification is the cause when RFP generation runs
	// without a classification result
	ErrMissingClassification = errors.New("no classification result available")

	// ErrRFPGeneration is the cause when the drafting capability or
	// template rendering fails
	ErrRFPGeneration = errors.New("rfp generation error")

	// ErrApproval is the cause when the review capability fails. A
	// guardrail rejection is a normal outcome, not an ErrApproval.
	ErrApproval = errors.New("approval error")

	// ErrDelivery is the cause when sending the RFP to suppliers fails
	// exceptionally (individual supplier failures are reported through
	// the delivery outcome instead)
	ErrDelivery = errors.New("email sending error")
)
