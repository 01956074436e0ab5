// Package store provides the durable type index used by indexer and
// dependency-analysis tooling.
//
// Types are keyed by their canonical (with-prefix) string rendering - the
// one rendering that is stable across versions - together with the
// addresses each type transitively references. The display rendering is
// stored alongside for convenience but is never used as a key.
package store
