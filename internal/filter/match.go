// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package filter

import (
	"fmt"
	"regexp"
)

// Matcher evaluates a compiled predicate against decoded documents.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	root node
}

type node interface {
	match(doc map[string]any) bool
}

// Compile prepares p for repeated evaluation. Regex patterns are compiled
// once; an invalid pattern is reported here rather than per document.
func Compile(p Predicate) (*Matcher, error) {
	root, err := compile(p)
	if err != nil {
		return nil, err
	}
	return &Matcher{root: root}, nil
}

// Match reports whether doc satisfies the compiled predicate.
func (m *Matcher) Match(doc map[string]any) bool {
	return m.root.match(doc)
}

// Match compiles p and evaluates it against a single document.
func Match(p Predicate, doc map[string]any) (bool, error) {
	m, err := Compile(p)
	if err != nil {
		return false, err
	}
	return m.Match(doc), nil
}

func compile(p Predicate) (node, error) {
	switch v := p.(type) {
	case nil:
		return andNode(nil), nil
	case Equal:
		return equalNode(v), nil
	case NotEqual:
		return notEqualNode(v), nil
	case In:
		set := make(map[string]struct{}, len(v.Values))
		for _, val := range v.Values {
			set[val] = struct{}{}
		}
		return inNode{field: v.Field, set: set}, nil
	case Regex:
		expr := v.Pattern
		if v.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", v.Field, err)
		}
		return regexNode{field: v.Field, re: re}, nil
	case And:
		nodes, err := compileAll(v)
		if err != nil {
			return nil, err
		}
		return andNode(nodes), nil
	case Or:
		nodes, err := compileAll(v)
		if err != nil {
			return nil, err
		}
		return orNode(nodes), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

func compileAll(ps []Predicate) ([]node, error) {
	nodes := make([]node, 0, len(ps))
	for _, p := range ps {
		n, err := compile(p)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// values flattens a field into the strings it holds. Scalars yield one
// value, arrays yield each string element, anything else yields nothing.
func values(doc map[string]any, field string) []string {
	switch v := doc[field].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

type equalNode Equal

func (n equalNode) match(doc map[string]any) bool {
	for _, v := range values(doc, n.Field) {
		if v == n.Value {
			return true
		}
	}
	return false
}

type notEqualNode NotEqual

func (n notEqualNode) match(doc map[string]any) bool {
	return !equalNode(n).match(doc)
}

type inNode struct {
	field string
	set   map[string]struct{}
}

func (n inNode) match(doc map[string]any) bool {
	for _, v := range values(doc, n.field) {
		if _, ok := n.set[v]; ok {
			return true
		}
	}
	return false
}

type regexNode struct {
	field string
	re    *regexp.Regexp
}

func (n regexNode) match(doc map[string]any) bool {
	for _, v := range values(doc, n.field) {
		if n.re.MatchString(v) {
			return true
		}
	}
	return false
}

type andNode []node

func (n andNode) match(doc map[string]any) bool {
	for _, child := range n {
		if !child.match(doc) {
			return false
		}
	}
	return true
}

type orNode []node

func (n orNode) match(doc map[string]any) bool {
	for _, child := range n {
		if child.match(doc) {
			return true
		}
	}
	return false
}
