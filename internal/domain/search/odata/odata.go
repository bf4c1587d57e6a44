// Package odata renders the boolean filter grammar understood by the remote search index.
package odata

import (
	"strconv"
	"strings"
)

// Op is a comparison operator.
type Op string

// Comparison operators.
const (
	OpEq Op = "eq"
	OpNe Op = "ne"
	OpGe Op = "ge"
	OpGt Op = "gt"
	OpLe Op = "le"
	OpLt Op = "lt"
)

// InDelimiter separates values inside search.in(). Values must not contain it.
const InDelimiter = "|"

// Quote renders s as a string literal. Embedded single quotes are doubled.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Eq renders `field eq 'value'`.
func Eq(field, value string) string {
	return Compare(field, OpEq, Quote(value))
}

// EqInt renders `field eq n`.
func EqInt(field string, n int) string {
	return Compare(field, OpEq, strconv.Itoa(n))
}

// CompareInt renders `field op n`.
func CompareInt(field string, op Op, n int) string {
	return Compare(field, op, strconv.Itoa(n))
}

// Compare renders `field op literal`. The literal is emitted verbatim.
func Compare(field string, op Op, literal string) string {
	return field + " " + string(op) + " " + literal
}

// Any renders a collection membership test: `field/any(x: x eq 'value')`.
func Any(field, value string) string {
	return field + "/any(x: x eq " + Quote(value) + ")"
}

// In renders `search.in(field, 'a|b|c', '|')`. Returns "" for no values.
func In(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	joined := strings.Join(values, InDelimiter)
	return "search.in(" + field + ", " + Quote(joined) + ", " + Quote(InDelimiter) + ")"
}

// And joins the non-empty parts with `and`. Returns "" when nothing is left.
func And(parts ...string) string {
	return join(" and ", parts)
}

// Or joins the non-empty parts with `or` and parenthesizes the group
// so it can sit inside a surrounding `and` chain.
func Or(parts ...string) string {
	kept := nonEmpty(parts)
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return Group(kept[0])
	}
	grouped := make([]string, len(kept))
	for i, p := range kept {
		grouped[i] = Group(p)
	}
	return "(" + strings.Join(grouped, " or ") + ")"
}

// Group parenthesizes a non-empty expression.
func Group(expr string) string {
	if expr == "" {
		return ""
	}
	return "(" + expr + ")"
}

// IsIdentifier reports whether s is a plain field path ([A-Za-z_][A-Za-z0-9_/]*).
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit && r != '/' {
			return false
		}
	}
	return true
}

func join(sep string, parts []string) string {
	return strings.Join(nonEmpty(parts), sep)
}

func nonEmpty(parts []string) []string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return kept
}
