package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/grafana/svgsizecheck/pkg/analysis"
)

const toolName = "svgsizecheck"

type Marshaler interface {
	Marshal(data analysis.Diagnostics) ([]byte, error)
}

type marshalerFunc func(data analysis.Diagnostics) ([]byte, error)

func (f marshalerFunc) Marshal(data analysis.Diagnostics) ([]byte, error) {
	return f(data)
}

type jsonMarshaler struct {
	target string
}

func NewJSONMarshaler(target string) Marshaler {
	return jsonMarshaler{target}
}

type jsonOutput struct {
	Target      string               `json:"target"`
	Diagnostics analysis.Diagnostics `json:"diagnostics"`
}

func (j jsonMarshaler) Marshal(data analysis.Diagnostics) ([]byte, error) {
	return json.MarshalIndent(jsonOutput{
		Target:      j.target,
		Diagnostics: data,
	}, "", "  ")
}

// sortedNames returns analyzer names in a stable order so that repeated runs
// print the same output.
func sortedNames(data analysis.Diagnostics) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var MarshalCLI = marshalerFunc(func(data analysis.Diagnostics) ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range sortedNames(data) {
		for _, d := range data[name] {
			switch d.Severity {
			case analysis.Error:
				buf.WriteString(color.RedString("error: "))
			case analysis.Warning:
				buf.WriteString(color.YellowString("warning: "))
			case analysis.Recommendation:
				buf.WriteString(color.CyanString("recommendation: "))
			case analysis.OK:
				buf.WriteString(color.GreenString("ok: "))
			}

			if d.Context != "" {
				buf.WriteString(d.Context + ": ")
			}

			buf.WriteString(d.Title)
			if len(d.Detail) > 0 {
				buf.WriteRune('\n')
				buf.WriteString(color.BlueString("detail: "))
				buf.WriteString(d.Detail)
			}
			buf.WriteRune('\n')
		}
	}
	return buf.Bytes(), nil
})

// MarshalGHA renders diagnostics as GitHub Actions workflow commands so they
// show up as annotations on the changed files.
var MarshalGHA = marshalerFunc(func(data analysis.Diagnostics) ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range sortedNames(data) {
		for _, d := range data[name] {
			var command, label string
			switch d.Severity {
			case analysis.Error:
				command, label = "error", "Error"
			case analysis.Warning:
				command, label = "warning", "Warning"
			case analysis.Recommendation:
				command, label = "notice", "Recommendation"
			default:
				command, label = "debug", "OK"
			}

			title := fmt.Sprintf("%s: %s", toolName, label)
			message := d.Detail
			switch {
			case d.Title != "" && d.Detail != "":
				title += ": " + d.Title
			case d.Title != "":
				message = d.Title
			}

			// debug commands do not take properties
			if command == "debug" {
				fmt.Fprintf(&buf, "::debug::%s\n", escapeData(title+": "+message))
				continue
			}

			var props []string
			if d.File != "" {
				props = append(props, "file="+escapeProperty(d.File))
				if d.Line > 0 {
					props = append(props, fmt.Sprintf("line=%d", d.Line))
				}
			}
			props = append(props, "title="+escapeProperty(title))

			fmt.Fprintf(&buf, "::%s %s::%s\n", command, strings.Join(props, ","), escapeData(message))
		}
	}
	return buf.Bytes(), nil
})

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	return strings.ReplaceAll(s, ",", "%2C")
}

func ExitCode(strict bool, diags analysis.Diagnostics) int {
	for _, ds := range diags {
		for _, d := range ds {
			switch d.Severity {
			case analysis.Error:
				return 1
			case analysis.Warning:
				if strict {
					return 1
				}
			}
		}
	}
	return 0
}

// Static checks

var (
	_ = Marshaler(jsonMarshaler{})
	_ = Marshaler(MarshalCLI)
	_ = Marshaler(MarshalGHA)
)
