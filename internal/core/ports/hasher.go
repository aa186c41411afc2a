package ports

// Hasher fingerprints files.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the content hash of a single file.
	ComputeFileHash(path string) (uint64, error)
	// Fingerprint returns one stable digest over the given files. Missing files contribute their path only.
	Fingerprint(paths []string) (string, error)
}
