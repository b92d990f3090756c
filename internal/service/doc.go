// Package service implements the business logic layer for the Voyage API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Caching
//
// ItineraryService keeps a read-through side cache in front of point
// lookups. The store remains the system of record: the cache is populated
// only after a successful lookup, invalidated unconditionally on update and
// delete, and its absence is never evidence that a record does not exist.
// A read racing a write may serve a stale snapshot for at most the cache
// TTL; that window is the accepted consistency model.
package service
