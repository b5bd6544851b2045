package runner

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/grafana/svgsizecheck/pkg/analysis"
	"github.com/grafana/svgsizecheck/pkg/logme"
)

type Config struct {
	Global    GlobalConfig              `yaml:"global"`
	Analyzers map[string]AnalyzerConfig `yaml:"analyzers"`
}

type GlobalConfig struct {
	Enabled    bool              `yaml:"enabled"`
	Severity   analysis.Severity `yaml:"severity"`
	JSONOutput bool              `yaml:"jsonOutput"`
	GHAOutput  bool              `yaml:"ghaOutput"`
	ReportAll  bool              `yaml:"reportAll"`
}

type AnalyzerConfig struct {
	Enabled    *bool                 `yaml:"enabled"`
	Severity   *analysis.Severity    `yaml:"severity"`
	Rules      map[string]RuleConfig `yaml:"rules"`
	Exceptions []string              `yaml:"exceptions"`
	Options    yaml.Node             `yaml:"options"`
}

type RuleConfig struct {
	Enabled    *bool              `yaml:"enabled"`
	Severity   *analysis.Severity `yaml:"severity"`
	Exceptions []string           `yaml:"exceptions"`
}

var defaultSeverity = analysis.Warning

// DefaultConfig enables every analyzer with the severities of its rules.
func DefaultConfig() Config {
	return Config{
		Global: GlobalConfig{Enabled: true},
	}
}

func Check(
	analyzers []*analysis.Analyzer,
	params analysis.CheckParams,
	cfg Config,
	severityOverwrite analysis.Severity,
) (analysis.Diagnostics, error) {
	targetName := TargetName(params.Target)

	initAnalyzers(analyzers, &cfg, targetName, severityOverwrite)
	diagnostics := make(analysis.Diagnostics)

	pass := &analysis.Pass{
		RootDir:     params.TargetDir,
		CheckParams: params,
		ResultOf:    make(map[*analysis.Analyzer]any),
		Report: func(analyzerName string, d analysis.Diagnostic) {
			diagnostics[analyzerName] = append(diagnostics[analyzerName], d)
		},
	}

	seen := make(map[*analysis.Analyzer]bool)

	var runFn func(currentAnalyzer *analysis.Analyzer) error

	runFn = func(currentAnalyzer *analysis.Analyzer) error {
		// do not run the same analyzer twice
		if _, ok := seen[currentAnalyzer]; ok {
			return nil
		}

		seen[currentAnalyzer] = true

		logme.DebugFln("Running analyzer %s", currentAnalyzer.Name)

		// run all the dependencies of the analyzer
		for _, dep := range currentAnalyzer.Requires {
			// if dependency returned error. This analyzer should return error too
			if err := runFn(dep); err != nil {
				return fmt.Errorf("%s: %w", dep.Name, err)
			}
		}

		pass.AnalyzerName = currentAnalyzer.Name
		pass.Options = nil
		if analyzerConfig, ok := cfg.Analyzers[currentAnalyzer.Name]; ok {
			pass.Options = &analyzerConfig.Options
		}

		res, err := currentAnalyzer.Run(pass)
		if err != nil {
			return err
		}
		pass.ResultOf[currentAnalyzer] = res

		return nil
	}

	for _, a := range analyzers {
		if err := runFn(a); err != nil {
			// on an error we still return the diagnostics we have so far
			return diagnostics, err
		}
	}

	return diagnostics, nil
}

// TargetName is the name exceptions are matched against: the base name of
// the target without a .zip extension.
func TargetName(target string) string {
	if target == "" {
		return ""
	}
	name := filepath.Base(strings.TrimRight(target, "/"))
	return strings.TrimSuffix(name, ".zip")
}

func initAnalyzers(
	analyzers []*analysis.Analyzer,
	cfg *Config,
	targetName string,
	severityOverwrite analysis.Severity,
) {
	for _, currentAnalyzer := range analyzers {
		// Inherit global config file
		analyzerEnabled := cfg.Global.Enabled
		analyzerSeverity := cfg.Global.Severity

		// default to hardcoded defaultSeverity if not set
		if analyzerSeverity == "" {
			analyzerSeverity = defaultSeverity
		}

		// Override via config file
		analyzerConfig, ok := cfg.Analyzers[currentAnalyzer.Name]
		if ok {
			if analyzerConfig.Enabled != nil {
				analyzerEnabled = *analyzerConfig.Enabled
			}
			if analyzerConfig.Severity != nil {
				analyzerSeverity = *analyzerConfig.Severity
			}
		}

		// Override via exceptions
		if isExcepted(targetName, &analyzerConfig) {
			analyzerEnabled = false
		}

		for _, currentRule := range currentAnalyzer.Rules {
			// Inherit analyzer config
			ruleEnabled := analyzerEnabled

			// use own config if available
			ruleSeverity := defaultRuleSeverity(currentRule)
			if ruleSeverity == "" {
				ruleSeverity = analyzerSeverity
			}

			// overwrite via config file
			ruleConfig, ok := analyzerConfig.Rules[currentRule.Name]
			if ok {
				if ruleConfig.Enabled != nil {
					ruleEnabled = *ruleConfig.Enabled
				}
				if ruleConfig.Severity != nil {
					ruleSeverity = *ruleConfig.Severity
				}
				// Check for rule-level exceptions
				if slices.Contains(ruleConfig.Exceptions, targetName) {
					logme.DebugFln(
						"Rule '%s' disabled for '%s' due to a rule-level exception.",
						currentRule.Name,
						targetName,
					)
					ruleEnabled = false
				}
			}

			if severityOverwrite != "" {
				ruleSeverity = severityOverwrite
			}

			currentRule.Disabled = !ruleEnabled
			currentRule.Severity = ruleSeverity
			currentRule.ReportAll = cfg.Global.ReportAll
		}
	}
}

var (
	ruleDefaultsMux sync.Mutex
	ruleDefaults    = make(map[*analysis.Rule]analysis.Severity)
)

// defaultRuleSeverity returns the severity a rule was declared with. Rules
// are package level values that get overwritten on every check, so the
// declared severity is remembered the first time a rule is seen.
func defaultRuleSeverity(rule *analysis.Rule) analysis.Severity {
	ruleDefaultsMux.Lock()
	defer ruleDefaultsMux.Unlock()
	severity, ok := ruleDefaults[rule]
	if !ok {
		severity = rule.Severity
		ruleDefaults[rule] = severity
	}
	return severity
}

func isExcepted(targetName string, cfg *AnalyzerConfig) bool {
	if len(targetName) > 0 && cfg != nil && len(cfg.Exceptions) > 0 {
		if slices.Contains(cfg.Exceptions, targetName) {
			return true
		}
	}
	return false
}
