package domain_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.trai.ch/workbench/internal/core/domain"
)

func TestPropertiesExpansionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("defined references are substituted", prop.ForAll(
		func(name, value, prefix, suffix string) bool {
			p := domain.NewProperties()
			p.Set(name, value)
			return p.Expand(prefix+"${"+name+"}"+suffix) == prefix+value+suffix
		},
		gen.Identifier(), gen.AlphaString(), gen.AlphaString(), gen.AlphaString(),
	))

	properties.Property("undefined references expand to nothing", prop.ForAll(
		func(name, prefix, suffix string) bool {
			p := domain.NewProperties()
			return p.Expand(prefix+"${"+name+"}"+suffix) == prefix+suffix
		},
		gen.Identifier(), gen.AlphaString(), gen.AlphaString(),
	))

	properties.Property("expansion is idempotent for reference-free values", prop.ForAll(
		func(name, value, text string) bool {
			p := domain.NewProperties()
			p.Set(name, value)
			in := text + "${" + name + "}" + text
			once := p.Expand(in)
			return p.Expand(once) == once
		},
		gen.Identifier(), gen.AlphaString(), gen.AlphaString(),
	))

	properties.Property("values are expanded at set time", prop.ForAll(
		func(base, value string) bool {
			p := domain.NewProperties()
			p.Set(base, value)
			p.Set("derived", "${"+base+"}")
			p.Set(base, value+"changed")
			got, _ := p.Get("derived")
			if base == "derived" {
				return true
			}
			return got == value
		},
		gen.Identifier(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
