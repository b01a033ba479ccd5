package adoption

import "fmt"

// Status represents the current state of an adoption request in its lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// validTransitions defines the state machine for adoption request transitions.
// Accepted, rejected and cancelled are all terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a recognized adoption request status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid adoption request status: %s", s)
	}
	return status, nil
}
