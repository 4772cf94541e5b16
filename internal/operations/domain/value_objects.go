package domain

type ID string
type Version int

func (vo ID) String() string {
	return string(vo)
}

// StepStatus represents the different states of a workflow step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"     // Initial state when the step is created
	StepStatusInProgress StepStatus = "in_progress" // Work on the step has started
	StepStatusDone       StepStatus = "done"        // Step completed, all gates passed
	StepStatusBlocked    StepStatus = "blocked"     // Manually parked
)

func (s StepStatus) Valid() bool {
	switch s {
	case StepStatusPending, StepStatusInProgress, StepStatusDone, StepStatusBlocked:
		return true
	default:
		return false
	}
}

// StatusOutcome is the result of a requested status change. Anything other
// than applied means the previous status was retained while the rest of the
// edit was still committed.
type StatusOutcome string

const (
	StatusOutcomeApplied             StatusOutcome = "applied"
	StatusOutcomeMissingRequirements StatusOutcome = "missing_requirements"
	StatusOutcomeBlockedByException  StatusOutcome = "blocked_by_exception"
	StatusOutcomeBlockedByDependency StatusOutcome = "blocked_by_dependencies"
)

// ExceptionStatus tracks a shipment exception's lifecycle.
type ExceptionStatus string

const (
	ExceptionStatusOpen     ExceptionStatus = "open"
	ExceptionStatusResolved ExceptionStatus = "resolved"
)
