package document

import "github.com/tessera-sh/tessera-core/tesseraerr"

// allowedTransitions enumerates the subset of the full state machine this
// core governs, per §4.9. Any pair not present here fails
// InvalidStateTransition.
var allowedTransitions = map[Status]map[Status]bool{
	StatusApproved:       {StatusDeconstructing: true},
	StatusDeconstructing: {StatusActive: true, StatusApproved: true},
	StatusActive:         {StatusDestroying: true},
	StatusDestroying:     {StatusDestroyed: true},
}

// CanTransition reports whether from -> to is one of the core's allowed
// transitions.
func CanTransition(from, to Status) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// Transition validates and applies from -> to on doc, failing
// InvalidStateTransition on any pair CanTransition rejects.
func Transition(doc *Document, to Status) *tesseraerr.Error {
	if !CanTransition(doc.Status, to) {
		return tesseraerr.ErrInvalidStateTransition.Wrap(
			transitionError(doc.Status, to),
		)
	}
	doc.Status = to
	return nil
}

type transitionErr struct {
	from, to Status
}

func (e transitionErr) Error() string {
	return string(e.from) + " -> " + string(e.to)
}

func transitionError(from, to Status) error {
	return transitionErr{from: from, to: to}
}
