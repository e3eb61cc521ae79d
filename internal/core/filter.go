// Package core provides filtering, sorting, and lookup over the notifications
// reported by toastyd.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/notify"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// Filter fields.
const (
	FieldKind    = "kind"
	FieldMessage = "message"
	FieldState   = "state"
	FieldAge     = "age"
	FieldID      = "id"
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string
	Operator FilterOp
	Value    string

	regex *regexp.Regexp
	age   time.Duration
}

// FilterExpr is a set of conditions that must all match.
type FilterExpr struct {
	Conditions []FilterCondition

	// Now is the reference time for age conditions; zero means time.Now.
	Now time.Time
}

// ParseDuration parses a duration string with extended formats.
// Supports: 90s, 5m, 48h, 7d, 1w
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	return d, nil
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: kind, message, state, id, age
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "kind=error" - error notifications
//   - "message~disk" - message contains "disk"
//   - "state!=exiting" - notifications that are not leaving
//   - "age>1m" - on screen for more than a minute
//   - "kind=confirmation,message~=(?i)delete"
func ParseFilter(expr string) (*FilterExpr, error) {
	filter := &FilterExpr{}
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}
	return filter, nil
}

// parseCondition parses a single condition like "kind=error" or "message~disk".
func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first so "!=" is not read as "=".
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx <= 0 {
			continue
		}
		cond := FilterCondition{
			Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
			Operator: op,
			Value:    strings.TrimSpace(s[idx+len(op):]),
		}
		if err := cond.init(); err != nil {
			return FilterCondition{}, err
		}
		return cond, nil
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init normalizes the field and pre-parses the value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "kind", "type":
		c.Field = FieldKind
		if c.isStringOp() && c.Operator != FilterOpContains && c.Operator != FilterOpRegex {
			kind, err := notify.ParseKind(c.Value)
			if err != nil {
				return err
			}
			c.Value = string(kind)
		}
	case "message", "msg", "body":
		c.Field = FieldMessage
	case "state":
		c.Field = FieldState
	case "id":
		c.Field = FieldID
	case "age":
		c.Field = FieldAge
		if c.isStringOp() {
			return fmt.Errorf("age only supports >, <, >= and <=")
		}
		d, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid age value: %w", err)
		}
		c.age = d
		return nil
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if !c.isStringOp() {
		return fmt.Errorf("%s only supports =, !=, ~ and ~=", c.Field)
	}
	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}
	return nil
}

func (c *FilterCondition) isStringOp() bool {
	switch c.Operator {
	case FilterOpEqual, FilterOpNotEqual, FilterOpContains, FilterOpRegex:
		return true
	default:
		return false
	}
}

// Match tests if an entry matches every condition.
func (f *FilterExpr) Match(e dbus.Entry) bool {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	for i := range f.Conditions {
		if !f.Conditions[i].match(e, now) {
			return false
		}
	}
	return true
}

func (c *FilterCondition) match(e dbus.Entry, now time.Time) bool {
	switch c.Field {
	case FieldKind:
		return c.matchString(e.Kind)
	case FieldMessage:
		return c.matchString(e.Message)
	case FieldState:
		return c.matchString(e.State)
	case FieldID:
		return c.matchString(e.ID)
	case FieldAge:
		return c.matchAge(now.Sub(e.CreatedAt()))
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchAge compares how long an entry has been on screen.
func (c *FilterCondition) matchAge(age time.Duration) bool {
	switch c.Operator {
	case FilterOpGreater:
		return age > c.age
	case FilterOpLess:
		return age < c.age
	case FilterOpGreaterEq:
		return age >= c.age
	case FilterOpLessEq:
		return age <= c.age
	default:
		return false
	}
}

// Filter returns the entries matching expr, keeping their order. A nil or
// empty expression matches everything. limit caps the result (0=unlimited).
func Filter(entries []dbus.Entry, expr *FilterExpr, limit int) []dbus.Entry {
	result := make([]dbus.Entry, 0, len(entries))
	for _, e := range entries {
		if expr == nil || expr.Match(e) {
			result = append(result, e)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
