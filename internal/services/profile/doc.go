// Package profile turns a completed wizard form into a persisted profile.
//
// Submission re-runs every step's validation on the server, rejects taken
// usernames, stores the photo through the upload service, hashes a new
// password with bcrypt and strips markup from free-text fields before the
// record is inserted. There is a single attempt: failures are returned to
// the caller and nothing is retried.
package profile
