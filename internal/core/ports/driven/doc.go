// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - AnnotationStore: Annotation persistence (SQLite, or in-memory for ephemeral runs)
//   - ContentSource: Reads and writes document text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExportSink: Writes annotated exports. Without it, Export returns ErrNotImplemented.
//   - DocumentWatcher: Reports document changes. Without it, Watch returns ErrNotImplemented.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
