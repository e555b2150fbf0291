// Package ring provides a fixed-capacity circular buffer.
// A Store is not safe for concurrent use; callers serialize access.
package ring
