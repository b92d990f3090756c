// Package repository implements the data access layer for the Voyage API.
//
// Each repository struct handles the SurrealQL operations for one domain
// entity. Repositories accept the database.Database interface so wiring and
// testing stay decoupled from the concrete SurrealDB client.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax for all caller-supplied
//     values; identifiers (sort columns) come only from fixed allow-lists
//   - type::record() for safe record-id handling
//   - time::now() for store-managed timestamps
//   - RETURN AFTER / RETURN BEFORE to observe the effect of mutations
//
// Point lookups return (nil, nil) when no record matches; callers translate
// that into their own not-found semantics.
package repository
