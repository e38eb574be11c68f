// SPDX-License-Identifier: MPL-2.0

// Package recipe models the backend's container image as ordered declarative
// build steps and renders them to a Dockerfile.
//
// The recipe is data, not behavior: package-manager and layering semantics
// belong to the container engine that consumes the rendered Dockerfile. The
// two-stage dependency copy (manifest first, full source last) is preserved so
// the engine can cache the dependency layer across source-only changes.
package recipe
