// Package restable implements the resource-table registry at the heart of
// the toolkit.
//
// A Table owns every loaded resource package, indexed by numeric id and by
// name, and partitioned into main packages (the application's own) and
// framework packages (its dependencies). It resolves packed 32-bit resource
// identifiers to concrete specs, applies the shared-library rewrite for
// identifiers with package byte 0x00, and assembles the summary metadata
// written to the output manifest.
//
// Lookup semantics:
//   - ResolveID unpacks a raw identifier and delegates to the owning
//     package; a missing package id is handed to the configured framework
//     loader before failing.
//   - ResolveValue walks package -> type -> spec by name and returns the
//     spec's default value.
//   - CurrentPackage and HighestSpecPackage implement the documented
//     fallback heuristics for ambiguous context.
//
// Failure policy: lookups hard-fail with typed errors (ErrUndefinedPackage,
// ErrUndefinedType, ErrUndefinedResource). Metadata assembly is best-effort
// in exactly one place: resolving the renamed package's id falls back to the
// known context id instead of aborting.
//
// The Table is not safe for concurrent writers. Register packages from a
// single goroutine; reads after the registration phase are unsynchronized
// by design.
package restable
