// Package commands defines the profilewizard CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - serve           Run the HTTP API and wizard sessions
//   - locations       List countries, or the states or cities under a parent
//   - check-username  Report whether a username is valid and available
//   - strength        Score a candidate password
//   - upload          Store a profile photo and print its URL
//
// # Implementation
//
// The root command loads the YAML configuration and builds the logger before
// any subcommand runs. Subcommands that need stores build the dependency
// graph from that configuration; with --server they talk to a running
// instance over HTTP instead.
package commands
