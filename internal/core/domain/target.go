package domain

import (
	"iter"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/zerr"
)

// MatchMode selects how a target name is compared to a requested identifier.
type MatchMode string

const (
	// MatchExact requires the identifier to equal the target name.
	MatchExact MatchMode = "exact"
	// MatchGlob treats the target name as a glob pattern.
	MatchGlob MatchMode = "glob"
	// MatchRegexp treats the target name as an unanchored regular expression.
	MatchRegexp MatchMode = "regexp"
)

// ParseMatchMode converts a declared match mode. The empty string means exact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(s)) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchGlob:
		return MatchGlob, nil
	case MatchRegexp, "regex":
		return MatchRegexp, nil
	default:
		return "", zerr.With(ErrInvalidMatchMode, "mode", s)
	}
}

// Target is a named build unit.
type Target struct {
	Name      string
	Builder   string
	Resources []Resource
	// Data is the builder payload: every declared key except builder, resources and match.
	Data map[string]any

	mode    MatchMode
	matcher func(string) bool
}

// NewTarget creates a target and compiles its name according to mode.
func NewTarget(name, builder string, mode MatchMode) (*Target, error) {
	t := &Target{
		Name:    name,
		Builder: builder,
		Data:    make(map[string]any),
		mode:    mode,
	}

	switch mode {
	case MatchExact, "":
		t.mode = MatchExact
		t.matcher = func(id string) bool { return id == name }
	case MatchGlob:
		g, err := glob.Compile(name)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrInvalidTargetPattern.Error()), "target", name)
		}
		t.matcher = g.Match
	case MatchRegexp:
		re, err := regexp.Compile(name)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrInvalidTargetPattern.Error()), "target", name)
		}
		t.matcher = re.MatchString
	default:
		return nil, zerr.With(ErrInvalidMatchMode, "mode", string(mode))
	}

	return t, nil
}

// Mode returns the match mode of the target.
func (t *Target) Mode() MatchMode {
	return t.mode
}

// Matches reports whether the requested identifier selects this target.
func (t *Target) Matches(id string) bool {
	if t.matcher == nil {
		return id == t.Name
	}
	return t.matcher(id)
}

// TargetSet holds targets in declaration order.
type TargetSet struct {
	order  []*Target
	byName map[string]*Target
}

// NewTargetSet creates an empty target set.
func NewTargetSet() *TargetSet {
	return &TargetSet{byName: make(map[string]*Target)}
}

// Add appends a target. Names must be unique.
func (s *TargetSet) Add(t *Target) error {
	if _, ok := s.byName[t.Name]; ok {
		return zerr.With(ErrDuplicateTarget, "target", t.Name)
	}
	s.order = append(s.order, t)
	s.byName[t.Name] = t
	return nil
}

// Get returns the target declared under name.
func (s *TargetSet) Get(name string) (*Target, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Resolve selects the target for a requested identifier.
// A target whose name equals id wins outright. Otherwise every pattern
// target is tried and exactly one must match.
func (s *TargetSet) Resolve(id string) (*Target, error) {
	if t, ok := s.byName[id]; ok {
		return t, nil
	}

	var matches []*Target
	for _, t := range s.order {
		if t.mode == MatchExact {
			continue
		}
		if t.Matches(id) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, zerr.With(ErrUnknownTarget, "target", id)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		err := zerr.With(ErrAmbiguousTarget, "target", id)
		return nil, zerr.With(err, "candidates", strings.Join(names, ", "))
	}
}

// Names returns target names in declaration order.
func (s *TargetSet) Names() []string {
	names := make([]string, len(s.order))
	for i, t := range s.order {
		names[i] = t.Name
	}
	return names
}

// All iterates over targets in declaration order.
func (s *TargetSet) All() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, t := range s.order {
			if !yield(t) {
				return
			}
		}
	}
}

// Len returns the number of targets.
func (s *TargetSet) Len() int {
	return len(s.order)
}
