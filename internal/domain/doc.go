// Package domain defines the core domain types for the lineaged family-tree system.
//
// This package contains the fundamental entities and value objects that represent
// genealogical concepts, independent of any wire format or storage engine.
//
// # Core Types
//
// Individual represents a person record: names, sex, vital events (birth and
// death dates and places), occupation, and free-text notes.
//
// Family represents a union between people: optional husband and wife
// references, an ordered list of children, and marriage/divorce facts.
//
// Tree is the entity graph fragment moved between the codec, the repository,
// and the service layer: the full set of individuals and families.
//
// # Dates
//
// Genealogical dates are frequently partial ("JAN 1960", "1960") or
// free-form ("about 1850", "before the war"). Dates are therefore stored
// exactly as written; the Date value type provides a structured parse of the
// GEDCOM day-month-year forms where one exists, and the codec flags the rest
// as warnings without rejecting them.
//
// # Validation
//
// ValidationReport is the preview result produced before an import is
// committed: entity counts, hard errors, and soft warnings with line numbers.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Entities hold stable IDs decoupled from transient GEDCOM cross-references
package domain
