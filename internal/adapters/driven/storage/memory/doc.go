// Package memory provides in-memory implementations of driven ports.
// They back tests and the --no-store mode of the CLI.
package memory
