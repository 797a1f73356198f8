package navigator

import (
	"regexp"
	"strings"

	"github.com/HendryAvila/tianav/internal/project"
)

// splitPath splits a slash-delimited path, dropping empty segments from
// leading, trailing, or doubled slashes.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitLeaf splits at the last slash into a group path and a leaf name.
func splitLeaf(path string) (group []string, leaf string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return nil, path
	}
	return splitPath(path[:i]), path[i+1:]
}

func joinPath(group, name string) string {
	if group == "" {
		return name
	}
	return group + "/" + name
}

// regexMetachars decides whether a leaf name is treated as a pattern.
// Closing brackets are absent on purpose: "Valve)" is a literal name.
const regexMetachars = `.^$*+?([{\|`

func isPattern(name string) bool {
	return strings.ContainsAny(name, regexMetachars)
}

func compileInsensitive(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// leafMatcher returns the predicate used for single-leaf resolution: a
// case-insensitive regex when nameOrPattern contains a metacharacter,
// otherwise a case-insensitive equality test.
func leafMatcher(nameOrPattern string) (func(string) bool, error) {
	if !isPattern(nameOrPattern) {
		return func(name string) bool { return strings.EqualFold(name, nameOrPattern) }, nil
	}
	re, err := compileInsensitive(nameOrPattern)
	if err != nil {
		return nil, project.InvalidPattern(nameOrPattern, err)
	}
	return re.MatchString, nil
}

// leafFilter is the collector's name filter. An empty pattern keeps every
// leaf. A pattern that fails to compile rejects each leaf it is asked
// about instead of failing the walk.
type leafFilter struct {
	pattern string
	re      *regexp.Regexp
	err     error
}

func newLeafFilter(pattern string) *leafFilter {
	f := &leafFilter{pattern: pattern}
	if pattern != "" {
		f.re, f.err = compileInsensitive(pattern)
	}
	return f
}

func (f *leafFilter) match(name string) bool {
	if f.pattern == "" {
		return true
	}
	if f.err != nil {
		return false
	}
	return f.re.MatchString(name)
}
