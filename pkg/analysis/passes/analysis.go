package passes

import (
	"github.com/grafana/svgsizecheck/pkg/analysis"
	"github.com/grafana/svgsizecheck/pkg/analysis/passes/svgfiles"
	"github.com/grafana/svgsizecheck/pkg/analysis/passes/svgsize"
)

var Analyzers = []*analysis.Analyzer{
	svgfiles.Analyzer,
	svgsize.Analyzer,
}
