// Package app wires application dependencies for the CLI and server.
//
// It loads Config from YAML, builds the concrete stores, object storage,
// location source and high-level services it selects, and exposes them via
// the Wire struct for commands to use.
package app
