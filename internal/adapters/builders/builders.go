// Package builders holds the helpers shared by every builder plugin.
package builders

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"go.trai.ch/workbench/internal/adapters/fs"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// Producer runs a builder's production step for the stale outputs and
// returns the outputs it produced.
type Producer func(ctx context.Context, stale []string) ([]string, error)

// DecodeData decodes a target's builder payload over the defaults already held in out.
// Keys present in data replace the default wholesale. Single values decode into slices.
func DecodeData(data map[string]any, out any) error {
	if len(data) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Squash:           true,
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrInvalidBuilderData.Error())
	}
	if err := decoder.Decode(data); err != nil {
		return zerr.Wrap(err, domain.ErrInvalidBuilderData.Error())
	}
	return nil
}

// ExpandAll expands every value through the host's properties.
func ExpandAll(host *ports.BuilderHost, values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = host.Expand(v)
	}
	return out
}

// BindResources returns the resource files, failing if any of them is missing.
func BindResources(resources []domain.Resource) ([]string, error) {
	files := domain.ResourceFiles(resources)
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if fs.IsNotExist(err) {
				return nil, zerr.With(domain.ErrResourceNotFound, "file", file)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "file", file)
		}
	}
	return files, nil
}

// DefaultOutput derives the output path for inputs below the binDir property.
// A single input keeps its base name with the extension replaced by suffix.
// Several inputs are bundled into one output named after the target with
// bundleSuffix. An empty suffix keeps the extension of the first input.
func DefaultOutput(host *ports.BuilderHost, inputs []string, suffix, bundleSuffix string) string {
	if len(inputs) == 0 {
		return ""
	}
	binDir := host.Properties.GetOr(domain.BinDirProperty, domain.DefaultBinDir)
	if len(inputs) == 1 {
		base := filepath.Base(inputs[0])
		ext := filepath.Ext(base)
		if suffix == "" {
			suffix = ext
		}
		return filepath.Join(binDir, strings.TrimSuffix(base, ext)+suffix)
	}
	if bundleSuffix == "" {
		bundleSuffix = filepath.Ext(inputs[0])
	}
	return filepath.Join(binDir, host.Target+bundleSuffix)
}

// Existing returns the paths that exist on disk.
func Existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Produce applies the common build contract around a production step.
//
// No inputs yields StatusNoInputs. Fresh outputs are skipped. In a dry run
// the stale outputs are reported as planned. Otherwise produce is called
// with the stale outputs after their directories are created.
func Produce(ctx context.Context, host *ports.BuilderHost, inputs, outputs []string, produce Producer) (domain.BuildResult, error) {
	if len(inputs) == 0 {
		return domain.BuildResult{Status: domain.StatusNoInputs}, nil
	}

	var stale []string
	isStale := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		needs, err := host.Tracker.NeedsUpdate(out, inputs)
		if err != nil {
			return domain.BuildResult{}, zerr.With(zerr.Wrap(err, domain.ErrBuilderFailed.Error()), "output", out)
		}
		if needs {
			stale = append(stale, out)
			isStale[out] = true
		}
	}

	if len(stale) == 0 {
		return domain.BuildResult{Status: domain.StatusUpToDate, Outputs: mark(outputs, domain.OutputSkipped)}, nil
	}

	if host.Dry() {
		result := domain.BuildResult{Status: domain.StatusDryRun}
		for _, out := range outputs {
			status := domain.OutputSkipped
			if isStale[out] {
				status = domain.OutputPlanned
			}
			result.Outputs = append(result.Outputs, domain.Output{Path: out, Status: status})
		}
		return result, nil
	}

	for _, out := range stale {
		if err := os.MkdirAll(filepath.Dir(out), domain.DirPerm); err != nil {
			return domain.BuildResult{}, zerr.With(zerr.Wrap(err, domain.ErrBuilderFailed.Error()), "output", out)
		}
	}

	produced, err := produce(ctx, stale)
	if err != nil {
		return domain.BuildResult{}, zerr.With(zerr.Wrap(err, domain.ErrBuilderFailed.Error()), "target", host.Target)
	}

	built := make(map[string]bool, len(produced))
	for _, p := range produced {
		built[p] = true
	}

	result := domain.BuildResult{Status: domain.StatusBuilt}
	for _, out := range outputs {
		switch {
		case !isStale[out]:
			result.Outputs = append(result.Outputs, domain.Output{Path: out, Status: domain.OutputSkipped})
		case built[out]:
			result.Outputs = append(result.Outputs, domain.Output{Path: out, Status: domain.OutputBuilt})
		default:
			result.Status = domain.StatusPartial
		}
	}
	return result, nil
}

func mark(paths []string, status domain.OutputStatus) []domain.Output {
	out := make([]domain.Output, len(paths))
	for i, p := range paths {
		out[i] = domain.Output{Path: p, Status: status}
	}
	return out
}
