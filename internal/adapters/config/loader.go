// Package config loads build descriptions into domain.Config.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for JSON and YAML build descriptions.
type Loader struct {
	homeDir func() (string, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithHomeDir overrides the directory searched for the per-user override file.
func WithHomeDir(dir string) Option {
	return func(l *Loader) {
		l.homeDir = func() (string, error) { return dir, nil }
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{homeDir: os.UserHomeDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the build description at path.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	file, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	cfg, err := Build(file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.Path = path
	cfg.Dir = filepath.Dir(path)
	cfg.Locals = l.loadLocals(cfg)

	return cfg, nil
}

// Parse decodes a build description. YAML is used for .yaml and .yml files, JSON otherwise.
func Parse(path string, data []byte) (*BuildFile, error) {
	var file BuildFile

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return &file, nil
}

// Build converts a decoded build description into a domain.Config.
// Properties are set in declaration order, so each may reference the ones before it.
func Build(file *BuildFile) (*domain.Config, error) {
	cfg := domain.NewConfig()

	for name, value := range file.Properties.All() {
		cfg.Properties.Set(name, stringify(value))
	}

	for name, decls := range file.Resources.All() {
		group := make([]domain.Resource, 0, len(decls))
		for _, decl := range decls {
			r, err := parseResource(cfg, decl)
			if err != nil {
				return nil, zerr.With(err, "group", name)
			}
			group = append(group, r)
		}
		cfg.ResourceGroups[name] = group
	}

	plugins, err := parsePlugins(file.Plugins)
	if err != nil {
		return nil, err
	}
	cfg.Plugins = plugins

	for name, decl := range file.Targets.All() {
		target, err := parseTarget(cfg, name, decl)
		if err != nil {
			return nil, err
		}
		if err := cfg.Targets.Add(target); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseTarget(cfg *domain.Config, name string, decl map[string]any) (*domain.Target, error) {
	builder, _ := decl[keyBuilder].(string)
	if builder == "" {
		return nil, zerr.With(zerr.With(domain.ErrInvalidTarget, "target", name), "reason", "missing builder")
	}

	modeRaw, _ := decl[keyMatch].(string)
	mode, err := domain.ParseMatchMode(modeRaw)
	if err != nil {
		return nil, zerr.With(err, "target", name)
	}

	target, err := domain.NewTarget(name, builder, mode)
	if err != nil {
		return nil, err
	}

	refs, err := asList(decl[keyResources])
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrInvalidTarget, "target", name), "reason", "resources must be a list")
	}
	for _, ref := range refs {
		if groupName, ok := ref.(string); ok {
			if group, ok := cfg.ResourceGroups[groupName]; ok {
				target.Resources = append(target.Resources, group...)
				continue
			}
		}
		r, err := parseResource(cfg, ref)
		if err != nil {
			return nil, zerr.With(err, "target", name)
		}
		target.Resources = append(target.Resources, r)
	}

	for key, value := range decl {
		switch key {
		case keyBuilder, keyResources, keyMatch:
		default:
			target.Data[key] = value
		}
	}

	return target, nil
}

// parseResource accepts a path string or an object with a file key plus metadata.
func parseResource(cfg *domain.Config, decl any) (domain.Resource, error) {
	switch v := decl.(type) {
	case string:
		return domain.Resource{File: cfg.Expand(v)}, nil
	case map[string]any:
		file, _ := v[keyFile].(string)
		if file == "" {
			return domain.Resource{}, zerr.With(domain.ErrInvalidResource, "reason", "missing file")
		}
		r := domain.Resource{File: cfg.Expand(file)}
		if len(v) > 1 {
			r.Meta = make(map[string]any, len(v)-1)
			for k, val := range v {
				if k != keyFile {
					r.Meta[k] = val
				}
			}
		}
		return r, nil
	default:
		return domain.Resource{}, zerr.With(domain.ErrInvalidResource, "type", fmt.Sprintf("%T", decl))
	}
}

// parsePlugins accepts a single id, a list of ids or a mapping keyed by id.
func parsePlugins(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, zerr.With(domain.ErrConfigParseFailed, "reason", "plugin ids must be strings")
			}
			ids = append(ids, id)
		}
		return ids, nil
	case map[string]any:
		return slices.Sorted(maps.Keys(v)), nil
	default:
		return nil, zerr.With(domain.ErrConfigParseFailed, "reason", "plugins must be a list or an object")
	}
}

func asList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case string, map[string]any:
		return []any{v}, nil
	default:
		return nil, errors.New("not a list")
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
