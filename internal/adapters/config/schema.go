package config

import (
	"bytes"
	"encoding/json"
	"iter"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// BuildFile is the on-disk shape of a build description.
type BuildFile struct {
	Properties Ordered[any]            `json:"properties" yaml:"properties"`
	Resources  Ordered[[]any]          `json:"resources" yaml:"resources"`
	Plugins    any                     `json:"plugins" yaml:"plugins"`
	Targets    Ordered[map[string]any] `json:"targets" yaml:"targets"`
}

// Reserved target keys. Every other key is handed to the builder.
const (
	keyBuilder   = "builder"
	keyResources = "resources"
	keyMatch     = "match"
	keyFile      = "file"
)

var (
	errExpectedObject = zerr.New("expected an object")
	errDuplicateKey   = zerr.New("duplicate key")
)

// Ordered is a string-keyed object that remembers declaration order.
// Both JSON and YAML decoding reject duplicate keys.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// All iterates over the entries in declaration order.
func (o *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Keys returns the keys in declaration order.
func (o *Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

func (o *Ordered[V]) add(key string, value V) error {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, ok := o.values[key]; ok {
		return zerr.With(errDuplicateKey, "key", key)
	}
	o.keys = append(o.keys, key)
	o.values[key] = value
	return nil
}

// UnmarshalJSON implements json.Unmarshaler by walking the object token by token.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errExpectedObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var value V
		if err := dec.Decode(&value); err != nil {
			return zerr.With(err, "key", key)
		}
		if err := o.add(key, value); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// UnmarshalYAML implements yaml.Unmarshaler using the mapping node's key order.
func (o *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return zerr.With(errExpectedObject, "line", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value

		var value V
		if err := node.Content[i+1].Decode(&value); err != nil {
			return zerr.With(err, "key", key)
		}
		if err := o.add(key, value); err != nil {
			return err
		}
	}

	return nil
}
