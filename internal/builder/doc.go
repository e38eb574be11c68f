// SPDX-License-Identifier: MPL-2.0

// Package builder turns a recipe into a locally built container image.
//
// Builds are cached by content hash: the rendered Dockerfile and the build
// context's file metadata feed a sha256 key that becomes the image tag, so an
// unchanged recipe over an unchanged source tree is a tag lookup instead of a
// rebuild. The rendered Dockerfile lives in a temporary directory outside the
// build context and is removed by the returned cleanup function.
package builder
