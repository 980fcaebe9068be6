package domain

import "fmt"

// CascadeState is a step of the cascade delete state machine.
type CascadeState string

const (
	CascadeStart               CascadeState = "start"
	CascadeConstraintsRelaxed  CascadeState = "constraints_relaxed"
	CascadeDependentsCleared   CascadeState = "dependents_cleared"
	CascadeProductRemoved      CascadeState = "product_removed"
	CascadeConstraintsRestored CascadeState = "constraints_restored"
	CascadeDone                CascadeState = "done"
	CascadeAborted             CascadeState = "aborted"
)

// Terminal reports whether no further transition is possible.
func (s CascadeState) Terminal() bool {
	return s == CascadeDone || s == CascadeAborted
}

// CascadeError reports a failed cascade delete. State is the last state
// reached before the failure; the transaction was rolled back and constraint
// enforcement was restored.
type CascadeError struct {
	ProductID int64
	State     CascadeState
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("delete product %d aborted after %s: %v", e.ProductID, e.State, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
