package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/grafana/svgsizecheck/pkg/analysis/passes"
	"github.com/grafana/svgsizecheck/pkg/genreadme"
	"github.com/grafana/svgsizecheck/pkg/logme"
)

const readmeFileName = "README.md"

func _main() error {
	// Read existing README
	b, err := os.ReadFile(readmeFileName)
	if err != nil {
		return fmt.Errorf("read readme: %w", err)
	}
	generatedReadme, err := genreadme.Generate(bytes.NewReader(b), passes.Analyzers)
	if err != nil {
		return fmt.Errorf("generate new readme: %w", err)
	}

	// Overwrite the README
	if err := os.WriteFile(readmeFileName, []byte(generatedReadme), 0o644); err != nil {
		return fmt.Errorf("write new readme: %w", err)
	}
	return nil
}

func main() {
	if err := _main(); err != nil {
		logme.Errorln(err)
		os.Exit(1)
	}
}
