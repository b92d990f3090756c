// Package model defines the domain types for the Voyage API.
//
// It contains the itinerary and user structs shared by the repository,
// service, and handler layers, plus the RFC 9457 ProblemDetails error model
// used for all HTTP error responses.
package model
