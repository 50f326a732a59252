// Package availability answers whether a username is still free.
//
// The check is fail-closed: a store error, a cancelled context or a
// candidate too short to be valid all report the name as unavailable, since
// an unverified name must never pass as free.
package availability
