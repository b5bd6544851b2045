// Package pathfilter decides whether a file is exempt from checks based on a
// list of simple wildcard patterns.
//
// Patterns are not full globs: '*' matches any run of characters, everything
// else is literal, and a pattern matches anywhere inside the path.
package pathfilter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

type Filter struct {
	patterns []string
	compiled []*regexp.Regexp
}

func New(patterns []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, p)
		f.compiled = append(f.compiled, re)
	}
	return f, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.Compile(strings.Join(parts, ".*"))
}

// Match reports whether relPath is matched by any pattern.
func (f *Filter) Match(relPath string) bool {
	_, ok := f.Pattern(relPath)
	return ok
}

// Pattern returns the first pattern that matches relPath.
func (f *Filter) Pattern(relPath string) (string, bool) {
	if f == nil {
		return "", false
	}
	relPath = filepath.ToSlash(relPath)
	for i, re := range f.compiled {
		if re.MatchString(relPath) {
			return f.patterns[i], true
		}
	}
	return "", false
}

func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.compiled)
}
