package domain

// Command is an external process invocation.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}
