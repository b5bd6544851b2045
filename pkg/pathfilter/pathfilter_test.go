package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	for _, tc := range []struct {
		name     string
		patterns []string
		path     string
		match    bool
	}{
		{name: "no patterns", path: "img/logo.svg"},
		{name: "literal substring", patterns: []string{"img/"}, path: "src/img/logo.svg", match: true},
		{name: "wildcard", patterns: []string{"img/*.svg"}, path: "img/logo.svg", match: true},
		{name: "wildcard crosses directories", patterns: []string{"src*logo"}, path: "src/a/b/logo.svg", match: true},
		{name: "multiple wildcards", patterns: []string{"*/vendor/*"}, path: "lib/vendor/icons/x.svg", match: true},
		{name: "dot is literal", patterns: []string{"logo.svg"}, path: "logoXsvg", match: false},
		{name: "brackets are literal", patterns: []string{"[a]"}, path: "a.svg", match: false},
		{name: "brackets match literally", patterns: []string{"[a]"}, path: "icons/[a].svg", match: true},
		{name: "second pattern matches", patterns: []string{"fonts/", "screenshots/"}, path: "img/screenshots/1.svg", match: true},
		{name: "no match", patterns: []string{"fonts/*"}, path: "img/logo.svg"},
		{name: "blank pattern ignored", patterns: []string{"  "}, path: "img/logo.svg"},
		{name: "case sensitive", patterns: []string{"IMG"}, path: "img/logo.svg"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, err := New(tc.patterns)
			require.NoError(t, err)
			require.Equal(t, tc.match, f.Match(tc.path))
		})
	}
}

func TestPatternReturnsFirstMatch(t *testing.T) {
	f, err := New([]string{"*.png", "img/*", "*.svg"})
	require.NoError(t, err)

	p, ok := f.Pattern("img/logo.svg")
	require.True(t, ok)
	require.Equal(t, "img/*", p)
	require.Equal(t, 3, f.Len())
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	require.False(t, f.Match("img/logo.svg"))
	require.Equal(t, 0, f.Len())
}
