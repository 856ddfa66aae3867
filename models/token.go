package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with convenience accessors.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
// UserID is a cached copy of the "sub" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim.
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetUserID() (string, error) {
	return t.GetSubject()
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
