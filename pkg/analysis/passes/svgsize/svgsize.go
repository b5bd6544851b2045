package svgsize

import (
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grafana/svgsizecheck/pkg/analysis"
	"github.com/grafana/svgsizecheck/pkg/analysis/passes/svgfiles"
	"github.com/grafana/svgsizecheck/pkg/logme"
	"github.com/grafana/svgsizecheck/pkg/pathfilter"
	"github.com/grafana/svgsizecheck/pkg/svgdimension"
)

var (
	invalidSvg           = &analysis.Rule{Name: "invalid-svg", Severity: analysis.Error}
	missingSvgDimensions = &analysis.Rule{Name: "missing-svg-dimensions", Severity: analysis.Warning}
	oversizedImage       = &analysis.Rule{Name: "oversized-image", Severity: analysis.Error}
)

var Analyzer = &analysis.Analyzer{
	Name:     "svgsize",
	Requires: []*analysis.Analyzer{svgfiles.Analyzer},
	Run:      run,
	Rules:    []*analysis.Rule{invalidSvg, missingSvgDimensions, oversizedImage},
	ReadmeInfo: analysis.ReadmeInfo{
		Name:         "SVG embedded image size",
		Description:  "Detects base64 images embedded in SVG files that are declared much larger than the SVG itself.",
		Dependencies: "SVG files",
	},
}

var ruleByKind = map[svgdimension.Kind]*analysis.Rule{
	svgdimension.KindInvalidSvg:        invalidSvg,
	svgdimension.KindMissingDimensions: missingSvgDimensions,
	svgdimension.KindOversizedImage:    oversizedImage,
}

var detailByKind = map[svgdimension.Kind]string{
	svgdimension.KindMissingDimensions: "The root svg element needs numeric width and height attributes so embedded images can be compared against them.",
	svgdimension.KindOversizedImage:    "Resize the embedded image close to the size it is displayed at, or raise maxSizeRatio for this check.",
}

// Options is the options block of the analyzer in the configuration file.
type Options struct {
	MaxSizeRatio float64  `yaml:"maxSizeRatio"`
	IgnorePaths  []string `yaml:"ignorePaths"`
}

// Findings maps every checked file to what was found in it.
type Findings map[string][]svgdimension.Finding

func run(pass *analysis.Pass) (interface{}, error) {
	files, ok := analysis.GetResult[svgfiles.Files](pass, svgfiles.Analyzer)
	if !ok {
		return nil, nil
	}

	opts, err := options(pass)
	if err != nil {
		return nil, err
	}

	cfg := svgdimension.Config{MaxSizeRatio: opts.MaxSizeRatio}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := pathfilter.New(opts.IgnorePaths)
	if err != nil {
		return nil, err
	}

	results := make([][]svgdimension.Finding, len(files))
	checked := make([]bool, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		if pattern, ignored := filter.Pattern(file); ignored {
			logme.DebugFln("ignoring %s, matches %q", file, pattern)
			continue
		}
		checked[i] = true

		g.Go(func() error {
			content, err := os.ReadFile(filepath.Join(pass.RootDir, filepath.FromSlash(file)))
			if err != nil {
				results[i] = []svgdimension.Finding{svgdimension.ReadError(err)}
				return nil
			}
			results[i] = svgdimension.Validate(displayPath(pass.CheckParams, file), content, cfg)
			return nil
		})
	}

	// workers never return errors, every failure is a finding
	_ = g.Wait()

	findings := make(Findings)
	for i, file := range files {
		if !checked[i] {
			continue
		}
		findings[file] = results[i]
		shown := displayPath(pass.CheckParams, file)
		for _, f := range results[i] {
			pass.ReportDiagnostic(pass.AnalyzerName, ruleByKind[f.Kind], analysis.Diagnostic{
				Title:     f.Message(),
				Detail:    detailByKind[f.Kind],
				Context:   shown,
				File:      shown,
				Line:      f.Location.Line,
				Column:    f.Location.Column,
				MessageID: f.MessageID(),
				Data:      f.Data,
			})
		}
	}

	return findings, nil
}

// displayPath is the name a file is reported under. Files of a directory
// target given as a relative path are shown relative to the working
// directory. Absolute directories and extracted archives have no such path,
// so their files are shown relative to the target root.
func displayPath(params analysis.CheckParams, file string) string {
	if params.Target == "" || params.Target != params.TargetDir || filepath.IsAbs(params.Target) {
		return file
	}
	return filepath.ToSlash(filepath.Join(params.Target, filepath.FromSlash(file)))
}

// options merges the defaults, the configuration file and the command line.
// Command line values win over the file.
func options(pass *analysis.Pass) (Options, error) {
	opts := Options{MaxSizeRatio: svgdimension.DefaultMaxSizeRatio}
	if err := pass.DecodeOptions(&opts); err != nil {
		return Options{}, err
	}

	if pass.CheckParams.MaxSizeRatio > 0 {
		opts.MaxSizeRatio = pass.CheckParams.MaxSizeRatio
	}
	opts.IgnorePaths = append(opts.IgnorePaths, pass.CheckParams.IgnorePaths...)

	logme.DebugFln("svgsize: maxSizeRatio=%v ignorePaths=%v", opts.MaxSizeRatio, opts.IgnorePaths)

	return opts, nil
}
