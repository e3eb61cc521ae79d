package core

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByCreated SortField = "created"
	SortByKind    SortField = "kind"
	SortByState   SortField = "state"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns mount order, oldest first.
func DefaultSortOptions() SortOptions {
	return SortOptions{Field: SortByCreated, Order: SortAsc}
}

// kindRank orders kinds by severity.
var kindRank = map[string]int{
	"info":         0,
	"success":      1,
	"confirmation": 2,
	"warning":      3,
	"error":        4,
}

// stateRank follows the lifecycle.
var stateRank = map[string]int{
	"mounted": 0,
	"active":  1,
	"paused":  2,
	"exiting": 3,
	"removed": 4,
}

// Sort sorts entries in place. Ties keep their original order.
func Sort(entries []dbus.Entry, opts SortOptions) {
	slices.SortStableFunc(entries, func(a, b dbus.Entry) int {
		var c int
		switch opts.Field {
		case SortByKind:
			c = cmp.Compare(kindRank[a.Kind], kindRank[b.Kind])
		case SortByState:
			c = cmp.Compare(stateRank[a.State], stateRank[b.State])
		default:
			c = cmp.Compare(a.Created, b.Created)
		}
		if opts.Order == SortDesc {
			return -c
		}
		return c
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "created", "time", "age", "t":
		return SortByCreated, nil
	case "kind", "severity", "k":
		return SortByKind, nil
	case "state", "s":
		return SortByState, nil
	default:
		return "", fmt.Errorf("invalid sort field: %s (use created, kind or state)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
