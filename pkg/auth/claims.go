package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims are the JWT claims carried by a guest access token.
type AccessTokenClaims struct {
	GuestID     uuid.UUID `json:"guest_id"`
	PhoneNumber string    `json:"phone_number"`
	jwt.RegisteredClaims
}

// AccessTokenPayload holds the data an access token is minted from.
type AccessTokenPayload struct {
	GuestID     uuid.UUID
	PhoneNumber string
	JTI         string
}
