package notify

import (
	"math/rand/v2"
	"strings"

	"github.com/jmylchreest/toasty/internal/dom"
)

// Action is a labelled button on a notification. Callback receives the
// notification's container and may be nil for a plain dismiss button.
type Action struct {
	Label    string
	Callback func(container *dom.Element)
}

const actionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// actionIDLength is the length of the data-action-id attribute.
const actionIDLength = 8

// newActionID returns an opaque id used only to address the button.
func newActionID() string {
	var sb strings.Builder
	sb.Grow(actionIDLength)
	for range actionIDLength {
		sb.WriteByte(actionIDAlphabet[rand.IntN(len(actionIDAlphabet))])
	}
	return sb.String()
}

func validateActions(actions []Action, limit int) error {
	if len(actions) > limit {
		return &TooManyActionsError{Count: len(actions), Max: limit}
	}
	for i, a := range actions {
		if strings.TrimSpace(a.Label) == "" {
			return &InvalidActionError{Index: i, Reason: "label is empty"}
		}
	}
	return nil
}
