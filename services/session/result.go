package session

import "Tally/models"

// Outcome classifies what an engine operation did. The split between
// Rejected and Noop is deliberate and part of the protocol: a rejected
// join gets an explicit error event back, while most other precondition
// failures are swallowed without any client-visible signal.
type Outcome int

const (
	// OutcomeOK: state changed, room was notified.
	OutcomeOK Outcome = iota
	// OutcomeRejected: nothing changed, the caller gets an error reply.
	OutcomeRejected
	// OutcomeNoop: nothing changed, nobody is told.
	OutcomeNoop
)

// Result is what every lifecycle operation returns to the transport layer.
type Result struct {
	Outcome Outcome
	Message string          // set when Rejected
	Session *models.Session // set when OK
	Player  models.Player   // set when OK on create/join/rejoin
}
