package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the identity resolved by the identity provider
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username,omitempty"`
}

// Session is the result of a successful password login
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user"`
}

// TokenClaims represents the claims in an access token issued by the local provider.
// The user id travels in the registered subject claim.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}
