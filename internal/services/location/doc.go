// Package location serves the country → state → city hierarchy used by the
// wizard's cascading selectors.
//
// The table is static and in memory. Each lookup waits for a configurable
// latency before answering to behave like a remote directory, and the wait
// honours context cancellation. Unknown parents simply have no children.
package location
