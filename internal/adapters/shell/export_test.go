package shell

// MergeEnv is exported for white-box tests.
var MergeEnv = mergeEnv
