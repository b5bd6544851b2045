package svgfiles

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/danwakefield/fnmatch"

	"github.com/grafana/svgsizecheck/pkg/analysis"
	"github.com/grafana/svgsizecheck/pkg/logme"
)

var (
	noSvgFiles = &analysis.Rule{Name: "no-svg-files", Severity: analysis.OK}
)

// these are not regular expressions
// these are unix filename patterns
var excludeList = []string{
	// hidden files and directories
	".*",
	"*/.*",
	// dependencies
	"node_modules/*",
	"*/node_modules/*",
}

var Analyzer = &analysis.Analyzer{
	Name:  "svgfiles",
	Run:   run,
	Rules: []*analysis.Rule{noSvgFiles},
	ReadmeInfo: analysis.ReadmeInfo{
		Name:        "SVG files",
		Description: "Finds the SVG files to check. Hidden directories and node_modules are skipped.",
	},
}

// Files is the result of the analyzer: slash separated paths relative to the
// target directory, sorted.
type Files []string

func run(pass *analysis.Pass) (interface{}, error) {
	if _, err := os.Stat(pass.RootDir); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(pass.RootDir), "**/*.{svg,SVG}")
	if err != nil {
		return nil, err
	}

	var files Files
	for _, match := range matches {
		if isExcluded(match) {
			logme.DebugFln("skipping excluded file %s", match)
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)

	if len(files) == 0 {
		pass.ReportResult(
			pass.AnalyzerName,
			noSvgFiles,
			"no SVG files found",
			"Searched "+filepath.Clean(pass.RootDir)+" for *.svg files.",
		)
	}

	logme.DebugFln("found %d svg files", len(files))

	return files, nil
}

func isExcluded(file string) bool {
	for _, pattern := range excludeList {
		if fnmatch.Match(pattern, file, fnmatch.FNM_NOESCAPE) {
			return true
		}
	}
	return false
}
