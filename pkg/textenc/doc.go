// Package textenc turns raw file bytes into text without ever failing.
//
// A statistical detector proposes an encoding, a denylist of unreliable
// single-byte guesses is overridden to UTF-8, and any decode that does not
// round-trip falls back to lossy UTF-8 where each invalid byte becomes U+FFFD.
//
// Basic Usage:
//
//	text := textenc.Resolve(raw)
//
// A Resolver with a custom Detector can be used when the detection step has
// to be controlled, for instance in tests.
package textenc
