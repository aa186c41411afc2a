package domain

// Options are the per-invocation switches that builders honour.
type Options struct {
	// Dry asks builders to report intended outputs without producing them.
	Dry bool
	// Quiet suppresses progress and informational output.
	Quiet bool
}

// Config is a loaded build description.
type Config struct {
	// Path is the build description file the config was loaded from.
	Path string
	// Dir is the directory containing the build description.
	Dir        string
	Properties *Properties
	// ResourceGroups maps a group name to its declared resources.
	ResourceGroups map[string][]Resource
	Targets        *TargetSet
	// Plugins lists the optional builder plugins the description loads.
	Plugins []string
	// Locals holds values read from the optional override files. They are
	// exposed to builders and never merged into Properties.
	Locals  map[string]any
	Options Options
}

// NewConfig creates an empty config.
func NewConfig() *Config {
	return &Config{
		Properties:     NewProperties(),
		ResourceGroups: make(map[string][]Resource),
		Targets:        NewTargetSet(),
		Locals:         make(map[string]any),
	}
}

// Expand expands s against the config's properties.
func (c *Config) Expand(s string) string {
	return c.Properties.Expand(s)
}
