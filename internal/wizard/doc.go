// Package wizard holds the state of one multi-step profile form.
//
// A Controller owns the form values, the per-field errors and the current
// step. Location options are loaded through a Cascade, which keeps the
// country, state and city tiers consistent while lookups are in flight.
// Username availability is checked through a Debouncer so only the latest
// keystroke produces a visible result.
//
// Lookups and availability checks complete on their own goroutines. Each
// one captures a generation token when it is issued and its result is
// applied only if that token is still current; older completions are
// dropped.
package wizard
