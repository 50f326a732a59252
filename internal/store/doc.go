// Package store provides persistence for profiles and profile photos.
//
// It contains concrete implementations of the domain storage interfaces:
//   - ProfileFileStore keeps profile documents in a JSON file on disk.
//   - MongoProfileStore keeps them in a MongoDB collection.
//   - PhotoDirStore writes photos into a local directory.
//   - S3PhotoStore writes photos into an S3-compatible bucket.
//
// Both profile stores enforce username uniqueness on insert and report a
// duplicate as a domain.ConflictError. File-backed stores are
// concurrency-safe via internal locking and write through a temp file and
// rename.
package store
