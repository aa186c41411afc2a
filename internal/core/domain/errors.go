package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when the build description does not exist.
	ErrConfigNotFound = zerr.New("build description not found")

	// ErrConfigReadFailed is returned when the build description cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build description")

	// ErrConfigParseFailed is returned when the build description is not well-formed.
	ErrConfigParseFailed = zerr.New("failed to parse build description")

	// ErrInvalidTarget is returned when a target declaration is malformed.
	ErrInvalidTarget = zerr.New("invalid target declaration")

	// ErrInvalidMatchMode is returned when a target declares an unsupported match mode.
	ErrInvalidMatchMode = zerr.New("invalid match mode, expected 'exact', 'glob' or 'regexp'")

	// ErrInvalidTargetPattern is returned when a pattern target cannot be compiled.
	ErrInvalidTargetPattern = zerr.New("invalid target pattern")

	// ErrDuplicateTarget is returned when two targets share a name.
	ErrDuplicateTarget = zerr.New("duplicate target")

	// ErrInvalidResource is returned when a resource declaration is malformed.
	ErrInvalidResource = zerr.New("invalid resource declaration")

	// ErrNoTargetsSpecified is returned when a build is requested without targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrUnknownTarget is returned when a requested identifier matches no target.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrAmbiguousTarget is returned when a requested identifier matches several pattern targets.
	ErrAmbiguousTarget = zerr.New("ambiguous target")

	// ErrUnknownBuilder is returned when a target names a builder type that is not registered.
	ErrUnknownBuilder = zerr.New("unknown builder")

	// ErrDuplicateBuilder is returned when a builder type is registered twice.
	ErrDuplicateBuilder = zerr.New("builder already registered")

	// ErrUnknownPlugin is returned when the build description loads a plugin that does not exist.
	ErrUnknownPlugin = zerr.New("unknown plugin")

	// ErrInvalidBuilderData is returned when a builder payload cannot be decoded.
	ErrInvalidBuilderData = zerr.New("invalid builder data")

	// ErrResourceNotFound is returned when a declared resource path does not exist.
	ErrResourceNotFound = zerr.New("resource not found")

	// ErrStatFailed is returned when a path cannot be inspected for a reason other than absence.
	ErrStatFailed = zerr.New("failed to stat path")

	// ErrBuilderFailed is returned when a builder cannot produce its outputs.
	ErrBuilderFailed = zerr.New("builder failed")

	// ErrBuildFailed is returned when at least one requested target failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrInvalidSubAction is returned for an unsupported config sub-action.
	ErrInvalidSubAction = zerr.New("invalid sub-action for config action")

	// ErrInvalidOutputMode is returned for an unsupported --output value.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'auto', 'tui', 'linear' or 'ci'")

	// ErrReportReadFailed is returned when the build report cannot be read.
	ErrReportReadFailed = zerr.New("failed to read build report")

	// ErrReportWriteFailed is returned when the build report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write build report")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrToolDownloadFailed is returned when an external tool cannot be fetched.
	ErrToolDownloadFailed = zerr.New("failed to download tool")

	// ErrCommandFailed is returned when an external process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")
)
