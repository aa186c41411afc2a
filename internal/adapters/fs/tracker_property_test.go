package fs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.trai.ch/workbench/internal/adapters/fs"
)

func TestTrackerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	properties.Property("stale exactly when some input is newer than the output", prop.ForAll(
		func(offsets []int) bool {
			dir := t.TempDir()
			out := filepath.Join(dir, "out.js")
			if err := touch(out, base); err != nil {
				return false
			}

			inputs := make([]string, len(offsets))
			want := false
			for i, off := range offsets {
				inputs[i] = filepath.Join(dir, fmt.Sprintf("in%d.js", i))
				if err := touch(inputs[i], base.Add(time.Duration(off)*time.Second)); err != nil {
					return false
				}
				if off > 0 {
					want = true
				}
			}

			got, err := fs.NewTracker().NeedsUpdate(out, inputs)
			return err == nil && got == want
		},
		gen.SliceOf(gen.IntRange(-60, 60)),
	))

	properties.TestingRun(t)
}

func touch(path string, mtime time.Time) error {
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		return err
	}
	return os.Chtimes(path, mtime, mtime)
}
