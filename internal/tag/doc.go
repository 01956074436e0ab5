// Package tag provides the canonical representation of on-chain types:
// addresses, identifiers, type tags, struct tags, and module ids.
//
// This package contains pure value types only. All other internal packages
// import tag; tag imports nothing internal. This ensures the type model
// remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - The wire discriminant order of TypeTag variants is append-only and
//     must never be permuted (consensus depends on it).
//   - CanonicalString output is byte-stable forever; it feeds hashing and
//     on-chain effects. DisplayString is for humans and may change.
//   - Every value is immutable after construction and safe for concurrent
//     use without synchronization.
//   - No platform-dependent sizes anywhere: abstract gas sizes are fixed
//     literals, never unsafe.Sizeof.
package tag
