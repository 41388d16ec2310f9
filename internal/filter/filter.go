// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package filter

// Predicate is a node of a filter tree. The set of implementations is closed;
// store backends switch over the concrete types.
type Predicate interface {
	predicate()
}

// Equal matches documents whose Field equals Value.
type Equal struct {
	Field string
	Value string
}

// NotEqual matches documents whose Field does not equal Value.
type NotEqual struct {
	Field string
	Value string
}

// In matches documents whose Field is one of Values.
type In struct {
	Field  string
	Values []string
}

// Regex matches documents whose Field matches Pattern. Pattern uses the
// syntax shared by RE2 and PCRE for the constructs the catalog emits
// (literals escaped with regexp.QuoteMeta and \b anchors).
type Regex struct {
	Field      string
	Pattern    string
	IgnoreCase bool
}

// And matches when every operand matches.
type And []Predicate

// Or matches when at least one operand matches.
type Or []Predicate

func (Equal) predicate()    {}
func (NotEqual) predicate() {}
func (In) predicate()       {}
func (Regex) predicate()    {}
func (And) predicate()      {}
func (Or) predicate()       {}

// All returns a predicate matching every document.
func All() Predicate {
	return And{}
}

// Conjoin appends p to an And, flattening nested conjunctions.
func Conjoin(base And, p Predicate) And {
	if inner, ok := p.(And); ok {
		return append(base, inner...)
	}
	return append(base, p)
}
