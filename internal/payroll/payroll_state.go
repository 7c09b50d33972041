package payroll

// Transitions reachable through an explicit status request. PROCESSING and
// COMPLETED are only ever set by the processor.
var manualTransitions = map[RunStatus][]RunStatus{
	StatusApproved:  {StatusCompleted},
	StatusLocked:    {StatusApproved},
	StatusCancelled: {StatusDraft, StatusProcessing, StatusCompleted, StatusApproved},
}

func (s RunStatus) Terminal() bool {
	return s == StatusLocked || s == StatusCancelled
}

// CanProcess reports whether a processing pass may start. Re-processing a
// completed or approved run is allowed; a PROCESSING run left behind by a crashed
// pass can be picked up again once its lock has expired.
func (s RunStatus) CanProcess() bool {
	return !s.Terminal()
}

func (s RunStatus) CanEdit() bool {
	return !s.Terminal()
}

func (s RunStatus) CanRollback() bool {
	return s != StatusLocked
}

func CanTransition(from, to RunStatus) bool {
	for _, allowed := range manualTransitions[to] {
		if allowed == from {
			return true
		}
	}
	return false
}
