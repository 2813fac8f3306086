// Package common contains constants shared by the client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential token.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the local storage key of the credential token.
	TokenMetadataKey = "token"
)
