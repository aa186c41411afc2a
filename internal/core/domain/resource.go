package domain

// Resource is a declared input file plus free-form metadata.
type Resource struct {
	File string
	Meta map[string]any
}

// ResourceFiles returns the file paths of resources in order.
func ResourceFiles(resources []Resource) []string {
	files := make([]string, len(resources))
	for i, r := range resources {
		files[i] = r.File
	}
	return files
}
