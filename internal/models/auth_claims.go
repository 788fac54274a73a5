package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are carried by the tokens a local UI presents to the API.
type SessionClaims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}
