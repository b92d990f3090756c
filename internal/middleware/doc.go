// Package middleware provides HTTP middleware for the Voyage API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - OptionalAuth: like Auth but never rejects the request
//   - RateLimit: token bucket request limiting per user/IP
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates bearer tokens and puts the authenticated
// identity into the request context. After authentication, handlers can
// access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Rate Limiting
//
// Two limiter instances guard the API: a global per-client limiter on the
// whole surface and a stricter one wrapping the credential endpoints.
// Rejected requests get a 429 with Retry-After.
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetUserEmail(ctx): Returns authenticated user email
//   - GetClaims(ctx): Returns the full token claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
