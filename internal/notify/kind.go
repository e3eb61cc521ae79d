package notify

import "strings"

// Kind is the semantic category of a notification. It selects the CSS class
// and whether the notification dismisses itself.
type Kind string

const (
	KindInfo         Kind = "info"
	KindSuccess      Kind = "success"
	KindWarning      Kind = "warning"
	KindError        Kind = "error"
	KindConfirmation Kind = "confirmation"
)

// Kinds returns every recognized kind.
func Kinds() []Kind {
	return []Kind{KindInfo, KindSuccess, KindWarning, KindError, KindConfirmation}
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInfo, KindSuccess, KindWarning, KindError, KindConfirmation:
		return true
	default:
		return false
	}
}

// AutoDismiss reports whether notifications of this kind carry a dismiss
// timer. Confirmations wait for the user.
func (k Kind) AutoDismiss() bool {
	return k != KindConfirmation
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts user input to a Kind. "confirm" is accepted for
// confirmation.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "confirm" {
		k = KindConfirmation
	}
	if !k.Valid() {
		return "", &InvalidKindError{Kind: s}
	}
	return k, nil
}
