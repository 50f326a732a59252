// Package validation holds the per-step form rules of the profile wizard.
//
// Every function here is pure: it inspects a FormState (or a single value)
// and returns messages, never touching storage. The same rules gate forward
// navigation in the wizard and re-run on the server before a profile is
// persisted.
package validation
