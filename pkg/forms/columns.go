package forms

import (
	"regexp"
	"strings"

	"github.com/ajitpratap0/ragged/pkg/types"
)

// Columns returns the ordered dotted field paths reaching every leaf of the
// form. A non-empty listIndicator is inserted into the path at each list
// boundary; string-like lists count as leaves.
func Columns(f Form, listIndicator string) []string {
	out := []string{}
	f.columns(nil, listIndicator, &out)
	return out
}

// ColumnTypes returns the semantic type of each leaf, in Columns order.
func ColumnTypes(f Form) []types.Type {
	out := []types.Type{}
	f.columnTypes(&out)
	return out
}

// SelectColumns restricts a form to the fields matched by the dotted,
// glob-capable specifiers. Each dot-segment matches record field names with
// case-sensitive shell globbing; an exhausted pattern matches everything
// deeper. With expandBraces, {a,b} alternation groups are expanded into the
// cross product of alternatives before matching. The empty string selects
// the whole form. Subtrees that end up with no leaf columns are pruned; a
// fully pruned form collapses to an EmptyForm.
func SelectColumns(f Form, specifiers []string, expandBraces bool) (Form, error) {
	if expandBraces {
		expanded := make([]string, 0, len(specifiers))
		for _, item := range specifiers {
			expanded = expandBracesInto(item, expanded, map[string]struct{}{})
		}
		specifiers = expanded
	}

	matcher := newSpecifierMatcher(specifiers)
	selection := f.selectColumns(matcher)
	if selection != nil {
		selection = selection.pruneColumns(false)
	}
	if selection == nil {
		return NewEmptyForm(nil, nil), nil
	}
	return selection, nil
}

// braceRE finds the innermost {...} alternation groups.
var braceRE = regexp.MustCompile(`\{[^{}]*\}`)

// expandBracesInto appends every brace expansion of text to out, skipping
// textually duplicate expansions. Innermost groups expand first, then the
// result is re-expanded until no groups remain.
func expandBracesInto(text string, out []string, seen map[string]struct{}) []string {
	spans := braceRE.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		if _, dup := seen[text]; !dup {
			seen[text] = struct{}{}
			out = append(out, text)
		}
		return out
	}

	alts := make([][]string, len(spans))
	for i, span := range spans {
		alts[i] = strings.Split(text[span[0]+1:span[1]-1], ",")
	}

	combo := make([]int, len(spans))
	for {
		var b strings.Builder
		prev := 0
		for i, span := range spans {
			b.WriteString(text[prev:span[0]])
			b.WriteString(alts[i][combo[i]])
			prev = span[1]
		}
		b.WriteString(text[prev:])
		out = expandBracesInto(b.String(), out, seen)

		i := len(combo) - 1
		for i >= 0 {
			combo[i]++
			if combo[i] < len(alts[i]) {
				break
			}
			combo[i] = 0
			i--
		}
		if i < 0 {
			return out
		}
	}
}

// specifierMatcher holds the set of dotted patterns still active at one
// level of the tree. Specifiers are split into segments; matching a record
// field consumes one segment from each surviving pattern. matchIfEmpty means
// some pattern was fully consumed above this level, so everything deeper
// matches.
type specifierMatcher struct {
	specifiers   [][]string
	matchIfEmpty bool
}

func newSpecifierMatcher(specifiers []string) *specifierMatcher {
	split := make([][]string, 0, len(specifiers))
	seen := make(map[string]struct{}, len(specifiers))
	matchIfEmpty := false
	for _, item := range specifiers {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if item == "" {
			matchIfEmpty = true
			continue
		}
		split = append(split, strings.Split(item, "."))
	}
	return &specifierMatcher{specifiers: split, matchIfEmpty: matchIfEmpty}
}

// match narrows the pattern set against one record field name. It returns
// the matcher for the field's subtree, or nil if no pattern matches.
func (m *specifierMatcher) match(field string) *specifierMatcher {
	next := make([][]string, 0, len(m.specifiers))
	matchIfEmpty := m.matchIfEmpty
	for _, specifier := range m.specifiers {
		if !fnmatchcase(field, specifier[0]) {
			continue
		}
		if len(specifier) == 1 {
			matchIfEmpty = true
		} else {
			next = append(next, specifier[1:])
		}
	}
	if len(next) == 0 && !matchIfEmpty {
		return nil
	}
	return &specifierMatcher{specifiers: next, matchIfEmpty: matchIfEmpty}
}

// fnmatchcase matches name against a case-sensitive shell glob pattern
// supporting *, ?, [seq], and [!seq]. Unlike filesystem globbing there is no
// separator: * crosses any characters within the segment. A malformed
// bracket expression matches its characters literally.
func fnmatchcase(name, pattern string) bool {
	return fnmatchFrom(name, 0, pattern, 0)
}

func fnmatchFrom(name string, ni int, pattern string, pi int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '*':
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			for i := ni; i <= len(name); i++ {
				if fnmatchFrom(name, i, pattern, pi) {
					return true
				}
			}
			return false
		case '?':
			if ni == len(name) {
				return false
			}
			ni++
			pi++
		case '[':
			matched, next, ok := matchBracket(name, ni, pattern, pi)
			if !ok {
				// Literal '[' when the expression never closes.
				if ni == len(name) || name[ni] != '[' {
					return false
				}
				ni++
				pi++
				continue
			}
			if !matched {
				return false
			}
			ni++
			pi = next
		default:
			if ni == len(name) || name[ni] != pattern[pi] {
				return false
			}
			ni++
			pi++
		}
	}
	return ni == len(name)
}

// matchBracket evaluates the bracket expression starting at pattern[pi]
// against name[ni]. It returns whether the character matched, the pattern
// offset just past the closing bracket, and whether the expression was well
// formed.
func matchBracket(name string, ni int, pattern string, pi int) (matched bool, next int, ok bool) {
	j := pi + 1
	negate := false
	if j < len(pattern) && pattern[j] == '!' {
		negate = true
		j++
	}
	// A ']' in first position is a literal member.
	start := j
	for j < len(pattern) && (j == start || pattern[j] != ']') {
		j++
	}
	if j >= len(pattern) {
		return false, 0, false
	}
	if ni >= len(name) {
		return false, j + 1, true
	}

	c := name[ni]
	in := false
	for k := start; k < j; k++ {
		if k+2 < j && pattern[k+1] == '-' {
			if pattern[k] <= c && c <= pattern[k+2] {
				in = true
			}
			k += 2
		} else if pattern[k] == c {
			in = true
		}
	}
	return in != negate, j + 1, true
}

// SelectColumn is a single-specifier convenience over SelectColumns.
func SelectColumn(f Form, specifier string) (Form, error) {
	return SelectColumns(f, []string{specifier}, true)
}
