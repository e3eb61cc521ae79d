package notify

import "fmt"

// InvalidKindError reports a kind outside the recognized set.
type InvalidKindError struct {
	Kind string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("the notification kind %q is not available", e.Kind)
}

// TooManyActionsError reports more actions than a notification can show.
type TooManyActionsError struct {
	Count int
	Max   int
}

func (e *TooManyActionsError) Error() string {
	return fmt.Sprintf("%d actions supplied, at most %d allowed", e.Count, e.Max)
}

// InvalidActionError reports a malformed action.
type InvalidActionError struct {
	Index  int
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %d: %s", e.Index, e.Reason)
}

// ErrorHandler receives every rejected Create call.
type ErrorHandler func(err error)
