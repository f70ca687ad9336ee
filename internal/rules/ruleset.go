package rules

import (
	"errors"
	"slices"
)

// ErrIndexOutOfRange is returned by edits that name a missing rule or pattern.
var ErrIndexOutOfRange = errors.New("rules: index out of range")

// RuleSet is an ordered list of rules. Earlier rules take precedence.
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet builds a set from rules in precedence order.
func NewRuleSet(rules ...*Rule) *RuleSet {
	rs := &RuleSet{}
	for _, r := range rules {
		rs.Add(r)
	}
	return rs
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// At returns the rule at index i, or nil.
func (rs *RuleSet) At(i int) *Rule {
	if rs == nil || i < 0 || i >= len(rs.rules) {
		return nil
	}
	return rs.rules[i]
}

// Rules returns the rules in precedence order. The slice is a copy; the
// rules are shared.
func (rs *RuleSet) Rules() []*Rule {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.rules)
}

// Add appends a rule (NewRule when nil) and returns its index.
func (rs *RuleSet) Add(r *Rule) int {
	if r == nil {
		r = NewRule()
	}
	r.Normalize()
	rs.rules = append(rs.rules, r)
	return len(rs.rules) - 1
}

// Insert places a rule at index i, shifting later rules down.
func (rs *RuleSet) Insert(i int, r *Rule) error {
	if i < 0 || i > len(rs.rules) {
		return ErrIndexOutOfRange
	}
	if r == nil {
		r = NewRule()
	}
	r.Normalize()
	rs.rules = slices.Insert(rs.rules, i, r)
	return nil
}

// Remove deletes the rule at index i.
func (rs *RuleSet) Remove(i int) error {
	if i < 0 || i >= len(rs.rules) {
		return ErrIndexOutOfRange
	}
	rs.rules = slices.Delete(rs.rules, i, i+1)
	return nil
}

// MoveUp swaps rule i with its predecessor.
func (rs *RuleSet) MoveUp(i int) error {
	if i <= 0 || i >= len(rs.rules) {
		return ErrIndexOutOfRange
	}
	rs.rules[i-1], rs.rules[i] = rs.rules[i], rs.rules[i-1]
	return nil
}

// MoveDown swaps rule i with its successor.
func (rs *RuleSet) MoveDown(i int) error {
	if i < 0 || i+1 >= len(rs.rules) {
		return ErrIndexOutOfRange
	}
	rs.rules[i+1], rs.rules[i] = rs.rules[i], rs.rules[i+1]
	return nil
}

// ResetDerived drops derived state of every rule.
func (rs *RuleSet) ResetDerived() {
	for _, r := range rs.rules {
		r.ResetDerived()
	}
}
