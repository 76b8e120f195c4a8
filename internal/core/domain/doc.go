// Package domain defines the core business entities for lenk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Cell: An addressable block of a document
//   - Annotation: A user note bound to a cell by heading and signature
//   - MatchOutcome: How a cell's annotations were re-attached (Exact, Fuzzy, None)
//   - ResolvedDocument: One load of a document with its annotations resolved
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
