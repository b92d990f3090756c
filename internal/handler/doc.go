// Package handler provides HTTP request handlers for the Voyage API.
//
// The handler package contains all HTTP endpoint implementations organized
// by domain. Each handler struct encapsulates the dependencies needed to
// serve requests for a specific feature area (authentication, itineraries).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the services it needs
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Authentication
//
// Most handlers require authentication via JWT tokens. The auth middleware
// extracts the user ID and makes it available via middleware.GetUserID. The
// shared-view endpoint is the only record surface reachable without a token.
package handler
