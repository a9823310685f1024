package model

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload shared by every token kind: confirmation,
// access, refresh, member-invite and owner-invite. The kinds are kept
// apart by their signing secrets, not by the claim shape.
type TokenClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
