// Package cmd implements the command-line interface of tKV, a typed in-memory
// key-value store. Running tkv without a subcommand starts the shell.
//
// The package is organized into several subpackages:
//
//   - shell: The line based shell (GET, SET, DEL, TYPE, DEBUG, INFO)
//   - bench: Benchmarks of the store and the command processor
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Configuration is read from flags, environment variables with the prefix TKV_
// (also from .env and .env.local) and an optional config file (--config).
//
// See tkv -help for a list of all commands.
package cmd
