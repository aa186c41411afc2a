package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/workbench/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// loadLocals merges the per-user override file and then the project override file.
// Either may be absent or broken; neither is ever an error. A relative project
// override path is resolved against the working directory, like resources and outputs.
func (l *Loader) loadLocals(cfg *domain.Config) map[string]any {
	locals := make(map[string]any)

	if home, err := l.homeDir(); err == nil && home != "" {
		if values, ok := readOptional(filepath.Join(home, domain.LocalConfigFile)); ok {
			for k, v := range values {
				locals[k] = v
			}
		}
	}

	project := cfg.Properties.GetOr(domain.LocalConfigProperty, domain.LocalConfigFile)
	if values, ok := readOptional(project); ok {
		for k, v := range values {
			locals[k] = v
		}
	}

	return locals
}

// readOptional reads an override file. YAML is a superset of JSON, so both forms parse.
// ok is false when the file is missing, unreadable or not an object.
func readOptional(path string) (map[string]any, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the build description
	if err != nil {
		return nil, false
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, false
	}
	if values == nil {
		return nil, false
	}
	return values, true
}
