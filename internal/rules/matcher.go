package rules

import (
	"fmt"
	"path"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/justyntemme/colorfolder/internal/debug"
)

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = 50 * time.Millisecond

// maxCompiled caps the memo of compiled patterns. Live editing produces a
// new pattern string per keystroke.
const maxCompiled = 512

// PatternError describes a pattern that was skipped during matching.
type PatternError struct {
	Rule    int
	Pattern int
	Expr    string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("rule %d pattern %d %q: %v", e.Rule, e.Pattern, e.Expr, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// MatchResult is the outcome of matching one path.
type MatchResult struct {
	Index   int // -1 when nothing matched
	Matched bool
	Skipped []*PatternError
}

// NoMatch is the result for a path no rule applies to.
var NoMatch = MatchResult{Index: -1}

type compiled struct {
	re  *regexp2.Regexp
	err error
}

// Matcher finds the first rule matching a path. Compiled patterns are
// memoized, including compile failures. A Matcher is not safe for
// concurrent use.
type Matcher struct {
	Timeout  time.Duration
	compiled map[string]compiled
}

// NewMatcher creates a matcher with DefaultMatchTimeout.
func NewMatcher() *Matcher {
	return &Matcher{
		Timeout:  DefaultMatchTimeout,
		compiled: make(map[string]compiled),
	}
}

// Reset forgets every compiled pattern.
func (m *Matcher) Reset() {
	m.compiled = make(map[string]compiled)
}

// Match scans rules in order and, within a rule, patterns in order. The
// pattern is searched in the base name of p; for rules applying to
// children the derived segment pattern is also searched in "/"+p+"/".
// Malformed patterns are skipped and reported in the result.
func (m *Matcher) Match(p string, rs *RuleSet) MatchResult {
	result := NoMatch
	if rs.Len() == 0 {
		return result
	}

	name := path.Base(p)
	wrapped := "/" + p + "/"

	for i, rule := range rs.rules {
		children := rule.ChildPatterns()
		for j, pattern := range rule.Patterns {
			if pattern == "" {
				continue
			}

			ok, err := m.matchString(pattern, name)
			if err != nil {
				result.Skipped = append(result.Skipped, &PatternError{Rule: i, Pattern: j, Expr: pattern, Err: err})
				continue
			}
			if ok {
				debug.Log(debug.RULES_MATCH, "match %q: rule %d pattern %q", p, i, pattern)
				result.Index, result.Matched = i, true
				return result
			}

			if !rule.ApplyToChildren || j >= len(children) || children[j] == "" {
				continue
			}
			ok, err = m.matchString(children[j], wrapped)
			if err != nil {
				result.Skipped = append(result.Skipped, &PatternError{Rule: i, Pattern: j, Expr: children[j], Err: err})
				continue
			}
			if ok {
				debug.Log(debug.RULES_MATCH, "match %q: rule %d child pattern %q", p, i, children[j])
				result.Index, result.Matched = i, true
				return result
			}
		}
	}
	return result
}

// matchString compiles (or recalls) expr and searches s.
func (m *Matcher) matchString(expr, s string) (bool, error) {
	c, ok := m.compiled[expr]
	if !ok {
		if len(m.compiled) >= maxCompiled {
			m.Reset()
		}
		re, err := regexp2.Compile(expr, regexp2.None)
		if err == nil && m.Timeout > 0 {
			re.MatchTimeout = m.Timeout
		}
		c = compiled{re: re, err: err}
		m.compiled[expr] = c
	}
	if c.err != nil {
		return false, c.err
	}
	return c.re.MatchString(s)
}
