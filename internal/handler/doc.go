// Package handler implements HTTP request handlers for the lineaged API.
//
// This package provides the HTTP layer for the lineaged REST API, handling
// requests for GEDCOM validation, import and export, the YAML formats, and
// person and family CRUD.
//
// # Handlers
//
// TreeHandler handles every tree-related operation: the validate and import
// endpoints, file-download exports, entity CRUD, and stats.
//
// Middleware provides request logging, panic recovery, and CORS support.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for updates
// - DELETE for removal
//
// Errors are returned as JSON with appropriate HTTP status codes.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200,
// 201, 204). Error responses return JSON with an {error, details} structure.
// Export endpoints stream the document as an attachment instead.
package handler
