// Package client provides an HTTP implementation of the location,
// availability and upload services backed by a running profilewizard
// server.
//
// It lets the command line tools and the wizard controller run against a
// remote server instead of in-process services. Supported operations:
//   - Fetching the options of a location tier.
//   - Checking whether a username is available.
//   - Uploading a profile photo.
//
// All requests accept a context for cancellation and deadlines. Responses
// use the server's {success, error} envelope; transport failures and
// unexpected statuses surface as *domain.BackendUnavailableError, except
// for availability checks which fail closed.
package client
