package game

import "fmt"

// InvalidTransitionError reports an operation invoked in a phase that
// does not permit it.
type InvalidTransitionError struct {
	Phase Phase
	Op    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("game: cannot %s in phase %s", e.Op, e.Phase)
}

// RetryNotAllowedError reports a retry attempt in a mode whose policy
// forbids re-attempts.
type RetryNotAllowedError struct {
	Mode string
}

func (e *RetryNotAllowedError) Error() string {
	return fmt.Sprintf("game: mode %s does not allow retries", e.Mode)
}
