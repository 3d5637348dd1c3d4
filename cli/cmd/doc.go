// Package cmd implements the rapture subcommands: run, repl, fmt and init.
//
// Commands read and write through [Streams] stored in the context, so they
// can be driven from tests with in-memory buffers.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
