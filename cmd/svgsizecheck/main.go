package main

import (
	"os"

	"github.com/grafana/svgsizecheck/pkg/cmd/svgsizecheck"
	"github.com/grafana/svgsizecheck/pkg/logme"
)

func main() {
	if err := svgsizecheck.Execute(); err != nil {
		if code := svgsizecheck.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		logme.Errorln(err)
		os.Exit(1)
	}
}
