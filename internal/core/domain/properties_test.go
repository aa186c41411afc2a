package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/core/domain"
)

func TestProperties_SetExpandsAgainstEarlierEntries(t *testing.T) {
	p := domain.NewProperties()
	p.Set("a", "x")
	p.Set("b", "${a}/y")

	got, ok := p.Get("b")
	require.True(t, ok)
	assert.Equal(t, "x/y", got)
}

func TestProperties_ForwardReferenceIsEmpty(t *testing.T) {
	p := domain.NewProperties()
	p.Set("b", "${a}/y")
	p.Set("a", "x")

	got, _ := p.Get("b")
	assert.Equal(t, "/y", got)
}

func TestProperties_Expand(t *testing.T) {
	p := domain.NewProperties()
	p.Set("src", "lib")
	p.Set("bin", "out")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single", in: "${src}/a.js", want: "lib/a.js"},
		{name: "adjacent", in: "${src}${bin}", want: "libout"},
		{name: "missing", in: "${nope}/a.js", want: "/a.js"},
		{name: "plain", in: "a.js", want: "a.js"},
		{name: "unterminated", in: "${src", want: "${src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Expand(tt.in))
		})
	}
}

func TestProperties_ResetKeepsPosition(t *testing.T) {
	p := domain.NewProperties()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, p.Names())
	v, _ := p.Get("a")
	assert.Equal(t, "3", v)
}

func TestProperties_WithDoesNotMutate(t *testing.T) {
	p := domain.NewProperties()
	p.Set("binDir", "out")

	overlay := p.With(domain.TargetProperty, "app")

	assert.Equal(t, "out/app.js", overlay.Expand("${binDir}/${target}.js"))
	_, ok := p.Get(domain.TargetProperty)
	assert.False(t, ok)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, overlay.Len())
}

func TestProperties_AllInDeclarationOrder(t *testing.T) {
	p := domain.NewProperties()
	p.Set("z", "1")
	p.Set("a", "2")
	p.Set("m", "3")

	var names []string
	for name := range p.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"z", "a", "m"}, names)
}

func TestProperties_GetOr(t *testing.T) {
	p := domain.NewProperties()
	p.Set("empty", "")
	p.Set("set", "v")

	assert.Equal(t, "v", p.GetOr("set", "d"))
	assert.Equal(t, "d", p.GetOr("empty", "d"))
	assert.Equal(t, "d", p.GetOr("missing", "d"))
}
