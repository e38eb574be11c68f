// SPDX-License-Identifier: MPL-2.0

// Package container provides an abstraction layer for container engines
// (Docker/Podman) over their CLI surfaces.
//
// socforge only needs the build side of an engine: building an image from a
// rendered Dockerfile, probing whether a tag already exists, and removing
// stale tags. Engines are constructed via NewEngine (with cross-engine
// fallback) or AutoDetectEngine; command execution is injectable for tests.
package container
