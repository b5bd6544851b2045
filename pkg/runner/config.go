package runner

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

// ReadConfigFile loads a configuration file. Files ending in .json or .jsonc
// may contain comments and trailing commas; anything else is read as YAML.
// Values missing from the file keep their DefaultConfig value.
func ReadConfigFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// using hujson first to allow comments and trailing commas
		b, err = hujson.Standardize(b)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg, err := ParseConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML (or plain JSON) configuration and validates it
// against the configuration schema.
func ParseConfig(b []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if doc == nil {
		return cfg, nil
	}

	if err := validateSchema(doc); err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateSchema(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("couldn't validate configuration: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []error
	for _, desc := range result.Errors() {
		errs = append(errs, errors.New(desc.String()))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}
