// Package session holds the client's notion of "who is signed in".
//
// A Session is an explicit, injectable object: construct one with New, call
// Init once at start-up to hydrate it from the stored credential token, and
// Close it on shutdown. Login and Logout move it between the anonymous and
// authenticated states.
//
// Token policy: a token is only kept while it resolves to a profile. When
// GET /auth/me fails, during Init or right after Login, the stored token is
// cleared and the session stays anonymous. Init recovers silently; Login
// returns an error wrapping ErrProfileUnavailable so callers can tell that
// the account exists but the session could not be established.
package session
