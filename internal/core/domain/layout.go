package domain

import "path/filepath"

const (
	// DefaultBuildFile is the build description read when no file is given.
	DefaultBuildFile = "build.json"

	// LocalConfigFile is the name of the optional per-user and per-project override file.
	LocalConfigFile = ".workbenchrc"

	// LocalConfigProperty names the property that relocates the project override file.
	LocalConfigProperty = "localConfigFile"

	// BinDirProperty names the property holding the default output directory.
	BinDirProperty = "binDir"

	// DefaultBinDir is used when BinDirProperty is not set.
	DefaultBinDir = "bin"

	// VendorDirProperty names the property holding the directory for downloaded tools.
	VendorDirProperty = "vendorDir"

	// DefaultVendorDir is used when VendorDirProperty is not set.
	DefaultVendorDir = "vendor"

	// TargetProperty is the per-invocation property holding the requested target identifier.
	TargetProperty = "target"

	// WorkbenchDirName is the name of the internal metadata directory.
	WorkbenchDirName = ".workbench"

	// ReportFileName is the name of the build report file.
	ReportFileName = "report.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultReportPath returns the path of the build report relative to root.
func DefaultReportPath(root string) string {
	return filepath.Join(root, WorkbenchDirName, ReportFileName)
}
