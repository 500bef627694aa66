//go:build !chance_debug

package rng

// debugChecks enables precondition assertions in the unchecked variants.
// Build with -tags chance_debug to turn them on.
const debugChecks = false
