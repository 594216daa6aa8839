package entities

// ResolveToken exports resolveToken for testing.
var ResolveToken = resolveToken //nolint:gochecknoglobals // test export

// ExpandEnv exports expandEnv for testing.
var ExpandEnv = expandEnv //nolint:gochecknoglobals // test export
