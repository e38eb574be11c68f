// SPDX-License-Identifier: MPL-2.0

// Package envfile materializes the backend's dotenv file from an explicit
// key-value source, exactly once per target path.
//
// The file is created atomically with O_EXCL, so a pre-existing file (even one
// that appears between two racing invocations) is never overwritten; the
// second writer observes a Skipped result instead. Values pass through
// verbatim, and keys the source cannot resolve render as empty values.
package envfile
