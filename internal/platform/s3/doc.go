// Package s3 wraps the AWS SDK S3 client for photo storage on any
// S3-compatible object store (AWS, MinIO, Hetzner, ...).
//
// Only the handful of calls the photo store needs are exposed. Errors are
// wrapped with the bucket and key, and the typed SDK errors are classified
// into "not found" and "already owned" so callers never import smithy.
package s3
