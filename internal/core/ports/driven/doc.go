// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// The state layer needs exactly one of these:
//
//   - EngineClient: The request/response boundary to the fragment engine
//
// The local engine adapter is assembled from the rest:
//
//   - FragmentRepository: Ordered fragment persistence (memory or SQLite)
//   - DocumentReader: Reads source documents as text
//   - Normaliser: Turns one document format into plain text
//   - FilePicker: Chooses source documents for ingestion
//   - Splitter: One fragmentation algorithm per mode
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeNotifier: Signals that engine state changed outside this process.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or splitter package
package driven
