package domain

// CompletionGates is the pre-computed evidence a status decision runs
// against: requirement evaluation results, dependency states and the
// shipment's exception situation. It is assembled by the caller from
// snapshots; the decision itself is pure.
type CompletionGates struct {
	MissingFieldPaths          []string
	MissingDocumentTypes       []string
	UnsatisfiedChecklistGroups []string
	UnmetDependencies          []ID
	OpenBlockingException      bool
}

func (g CompletionGates) RequirementsMet() bool {
	return len(g.MissingFieldPaths) == 0 &&
		len(g.MissingDocumentTypes) == 0 &&
		len(g.UnsatisfiedChecklistGroups) == 0
}

// DecideStatus gates a requested status change. Only the transition into
// done is guarded: it needs every requirement met, every dependency done
// and no open blocking exception — the exception gate is skipped when the
// status is not actually changing. A failed gate keeps the previous status;
// the caller still commits every other part of the edit.
func DecideStatus(current, requested StepStatus, gates CompletionGates) (StepStatus, StatusOutcome) {
	if requested == "" || requested == current || !requested.Valid() {
		return current, StatusOutcomeApplied
	}

	if requested != StepStatusDone {
		return requested, StatusOutcomeApplied
	}

	if !gates.RequirementsMet() {
		return current, StatusOutcomeMissingRequirements
	}

	if len(gates.UnmetDependencies) > 0 {
		return current, StatusOutcomeBlockedByDependency
	}

	if gates.OpenBlockingException {
		return current, StatusOutcomeBlockedByException
	}

	return StepStatusDone, StatusOutcomeApplied
}
