package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/toasty/internal/dbus"
)

// ErrNoMatch is returned by Resolve when nothing on screen matches.
var ErrNoMatch = errors.New("no notification matches")

// LookupByID finds an entry by its id. Returns nil if not found.
func LookupByID(entries []dbus.Entry, id string) *dbus.Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// LookupByIndex finds an entry by its 1-based index, as printed by the plain
// and dmenu formats. Returns nil if index is out of bounds.
func LookupByIndex(entries []dbus.Entry, index int) *dbus.Entry {
	idx := index - 1
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return &entries[idx]
}

// Resolve turns a user reference into an entry. A reference is a full id, a
// 1-based index, or a unique id suffix of at least four characters (ids are
// ULIDs, so their tail is the random part). Case is ignored.
func Resolve(entries []dbus.Entry, ref string) (*dbus.Entry, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNoMatch)
	}

	if e := LookupByID(entries, ref); e != nil {
		return e, nil
	}
	if index, err := strconv.Atoi(ref); err == nil {
		if e := LookupByIndex(entries, index); e != nil {
			return e, nil
		}
		return nil, fmt.Errorf("%w: index %d out of range", ErrNoMatch, index)
	}

	if len(ref) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, ref)
	}
	var found *dbus.Entry
	for i := range entries {
		if strings.HasSuffix(entries[i].ID, ref) {
			if found != nil {
				return nil, fmt.Errorf("%q is ambiguous: matches %s and %s", ref, found.ID, entries[i].ID)
			}
			found = &entries[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, ref)
	}
	return found, nil
}

// Search finds entries whose message contains term, ignoring case.
func Search(entries []dbus.Entry, term string) []dbus.Entry {
	if term == "" {
		return entries
	}

	term = strings.ToLower(term)
	var result []dbus.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Message), term) {
			result = append(result, e)
		}
	}
	return result
}
