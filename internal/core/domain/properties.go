package domain

import (
	"iter"
	"regexp"
)

// propertyRef matches a ${name} reference. Names are matched lazily so
// adjacent references such as ${a}${b} resolve independently.
var propertyRef = regexp.MustCompile(`\$\{(.+?)\}`)

// Properties is an ordered name/value store with ${name} expansion.
//
// Values are expanded once, when they are set, against the entries that
// already exist. Later entries are therefore visible only to entries
// declared after them.
type Properties struct {
	names  []string
	values map[string]string
}

// NewProperties creates an empty property store.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Set expands raw against the current contents and stores the result.
// Re-setting an existing name keeps its original position.
func (p *Properties) Set(name, raw string) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = p.Expand(raw)
}

// Get returns the stored value for name.
func (p *Properties) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// GetOr returns the stored value for name, or fallback when it is unset or empty.
func (p *Properties) GetOr(name, fallback string) string {
	if v, ok := p.values[name]; ok && v != "" {
		return v
	}
	return fallback
}

// Expand replaces every ${name} in s with the stored value.
// Undefined names expand to the empty string.
func (p *Properties) Expand(s string) string {
	if p == nil {
		return propertyRef.ReplaceAllString(s, "")
	}
	return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
		return p.values[ref[2:len(ref)-1]]
	})
}

// Names returns the property names in declaration order.
func (p *Properties) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// All iterates over the properties in declaration order.
func (p *Properties) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range p.names {
			if !yield(name, p.values[name]) {
				return
			}
		}
	}
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.names)
}

// With returns a copy of the store with name set to value verbatim.
// The receiver is not modified.
func (p *Properties) With(name, value string) *Properties {
	clone := &Properties{
		names:  make([]string, len(p.names), len(p.names)+1),
		values: make(map[string]string, len(p.values)+1),
	}
	copy(clone.names, p.names)
	for k, v := range p.values {
		clone.values[k] = v
	}
	if _, ok := clone.values[name]; !ok {
		clone.names = append(clone.names, name)
	}
	clone.values[name] = value
	return clone
}
