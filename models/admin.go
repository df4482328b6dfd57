package models

import "github.com/golang-jwt/jwt/v5"

// The admin account is a single credential pair taken from the environment;
// there is no admin table.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
