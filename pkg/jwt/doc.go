// Package jwt provides bearer-token signing and validation for the Voyage
// API.
//
// Tokens are HS256-signed with a shared secret and carry the user's id,
// email, and display name alongside the registered claims. The auth
// middleware validates tokens on every protected request; handlers read the
// resolved identity from the request context.
package jwt
