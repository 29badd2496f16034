package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [TokenClaims] for claim access.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// TokenClaims provides access to the claim set carried by the token:
	// the standard registered claims plus the archive-specific username
	// and admin flag.
	TokenClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// TokenClaims is the claim set embedded in every issued token.
// The "sub" registered claim carries the opaque user id.
type TokenClaims struct {
	// Username identifies the account the token was issued for.
	Username string `json:"username"`

	// IsAdmin carries the moderator role so that admin-only endpoints
	// can be gated without a store lookup.
	IsAdmin bool `json:"is_admin"`

	jwt.RegisteredClaims
}

// UserID extracts the user identifier from the token's "sub" claim.
// Returns an error if the subject claim is missing or empty.
func (t *Token) UserID() (string, error) {
	id, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return id, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
