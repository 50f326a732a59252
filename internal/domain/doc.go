// Package domain defines the profile wizard's data models and contracts.
// It contains plain types (form state, records, location options, errors)
// and interfaces for stores and services only.
package domain
