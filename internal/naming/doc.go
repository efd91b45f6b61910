// Package naming derives variant file names and paths from the dataset
// conventions, and tracks which source owns each image name while tables
// are merged.
//
// Nothing here touches the filesystem. Paths are joined with "/" so the
// same code serves local roots and object-store URLs (s3://, gs://).
package naming
