// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package buildinfo holds version metadata stamped in at build time.
package buildinfo

var (
	// Version is the semantic version or "dev" for local builds.
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "none"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
