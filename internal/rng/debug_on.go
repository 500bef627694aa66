//go:build chance_debug

package rng

const debugChecks = true
