package testpassinterceptor

import "github.com/grafana/svgsizecheck/pkg/analysis"

type TestPassInterceptor struct {
	Diagnostics []*analysis.Diagnostic
}

func (t *TestPassInterceptor) ReportInterceptor() func(string, analysis.Diagnostic) {
	return func(_ string, diagnostic analysis.Diagnostic) {
		t.Diagnostics = append(t.Diagnostics, &diagnostic)
	}
}

// Titles returns the titles of all intercepted diagnostics in report order.
func (t *TestPassInterceptor) Titles() []string {
	titles := make([]string, 0, len(t.Diagnostics))
	for _, d := range t.Diagnostics {
		titles = append(titles, d.Title)
	}
	return titles
}
