package analysis

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/grafana/svgsizecheck/pkg/logme"
)

type Severity string

var (
	Error          Severity = "error"
	Warning        Severity = "warning"
	OK             Severity = "ok"
	Recommendation Severity = "recommendation"
)

type Pass struct {
	AnalyzerName string
	RootDir      string
	CheckParams  CheckParams
	ResultOf     map[*Analyzer]any
	Report       func(string, Diagnostic)
	// Options holds the raw options block of the running analyzer from the
	// configuration file, if any.
	Options *yaml.Node
}

type CheckParams struct {
	// Target contains the path passed to the checker. can be a directory, a zip file or an url
	Target string
	// TargetDir contains the local directory the checks run on
	TargetDir string
	// MaxSizeRatio overrides the configured ratio when it is greater than zero
	MaxSizeRatio float64
	// IgnorePaths are appended to the configured ignore patterns
	IgnorePaths []string
}

func (p *Pass) ReportResult(analysisName string, rule *Rule, message string, detail string) {
	p.ReportDiagnostic(analysisName, rule, Diagnostic{Title: message, Detail: detail})
}

// ReportDiagnostic reports d under rule, filling in the rule name and
// severity. Anything else set on d is kept.
func (p *Pass) ReportDiagnostic(analysisName string, rule *Rule, d Diagnostic) {
	if rule.Disabled {
		logme.Debugln(fmt.Sprintf("Rule %s is disabled. Skipping report.", rule.Name))
		return
	}

	if p.Report == nil {
		panic("Report function is not set")
	}

	d.Name = rule.Name
	d.Severity = rule.Severity
	p.Report(analysisName, d)
}

// DecodeOptions decodes the options block of the running analyzer into v.
// v is left untouched when there are no options.
func (p *Pass) DecodeOptions(v any) error {
	if p.Options == nil || p.Options.Kind == 0 {
		return nil
	}
	if err := p.Options.Decode(v); err != nil {
		return fmt.Errorf("%s: invalid options: %w", p.AnalyzerName, err)
	}
	return nil
}

// GetResult returns the result of a required analyzer as T.
func GetResult[T any](pass *Pass, a *Analyzer) (T, bool) {
	res, ok := pass.ResultOf[a].(T)
	return res, ok
}

type Diagnostic struct {
	Severity  Severity
	Title     string
	Detail    string
	Context   string         `json:"Context,omitempty"`
	Name      string
	File      string         `json:"File,omitempty"`
	Line      int            `json:"Line,omitempty"`
	Column    int            `json:"Column,omitempty"`
	MessageID string         `json:"MessageID,omitempty"`
	Data      map[string]any `json:"Data,omitempty"`
}

type Diagnostics map[string][]Diagnostic

type Rule struct {
	Name      string
	Disabled  bool
	Severity  Severity
	ReportAll bool
}

type Analyzer struct {
	Name       string
	Requires   []*Analyzer
	Run        func(pass *Pass) (interface{}, error)
	Rules      []*Rule
	ReadmeInfo ReadmeInfo
}

type ReadmeInfo struct {
	Name         string
	Description  string
	Dependencies string
}
