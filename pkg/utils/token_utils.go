package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"trip-planner/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSecureToken creates a random hex string from length random bytes.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueSessionToken signs an HS256 token a local UI presents to the planner API.
func IssueSessionToken(secret, client string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("utils.IssueSessionToken: empty secret")
	}
	now := time.Now()
	claims := &models.SessionClaims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   client,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("utils.IssueSessionToken: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies a token issued by IssueSessionToken.
func ParseSessionToken(secret, token string) (*models.SessionClaims, error) {
	claims := new(models.SessionClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("utils.ParseSessionToken: %w", err)
	}
	return claims, nil
}
