package session

import "github.com/golang-jwt/jwt/v5"

// SubjectOf returns the "sub" claim of token when it is a JWT. The signature
// is not checked: the value is used for log context only and is never trusted
// for access decisions. ok is false for opaque or malformed tokens.
func SubjectOf(token string) (sub string, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", false
	}
	if claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
