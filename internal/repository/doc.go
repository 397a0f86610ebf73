// Package repository defines the data access interfaces for lineaged.
//
// This package provides the repository abstraction layer for persisting
// and retrieving domain entities. The actual implementation is in the
// sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface defines all data access methods for persons,
// families, and the bulk tree operations used by import and export.
//
// # SQLite Implementation
//
// The sqlite implementation provides a complete repository using SQLite
// with WAL mode. It handles:
//
// - CRUD operations for persons and families
// - Ordered child membership via a link table
// - Foreign key constraints: deleting a person clears spouse links and
//   removes child memberships
// - Transactional imports for bulk operations
// - Insertion-order listings, which keep re-export output stable
//
// # Schema Migration
//
// The sqlite repository automatically migrates the schema on startup,
// creating tables and indexes as needed while preserving existing data.
package repository
