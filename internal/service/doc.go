// Package service implements business logic for the lineaged application.
//
// This package provides the service layer that coordinates between the HTTP
// handlers, the CLI, and the repository layer, implementing business rules,
// validation, and event publishing.
//
// # Services
//
// TreeService manages the family tree: GEDCOM validation, import, and
// export, the YAML sibling formats, entity CRUD, and stored-tree statistics.
// Imports are committed in a single repository transaction, so a failed
// parse or commit leaves the store untouched.
//
// # Event System
//
// The service publishes events via EventBus for observers such as the
// server's event log. Event types cover person and family lifecycle changes
// plus bulk tree imports and clears. Publishing is non-blocking; slow
// subscribers miss events rather than stalling a request.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Context-aware for cancellation and timeouts
package service
