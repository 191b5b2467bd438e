package engine

import "fmt"

// FatalError marks a broken engine invariant, most notably a session whose
// state is outside the enumerated set. The step that hits it is aborted and
// the prior committed state is left untouched.
type FatalError struct {
	SessionID string
	State     ConversationState
	Message   string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: session %s in state %q: %s", e.SessionID, e.State, e.Message)
}
