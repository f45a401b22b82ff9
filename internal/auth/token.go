// Package auth issues and validates the signed tokens that back shareable
// report links. Authentication of users is an external collaborator; the
// only credential this service mints is "whoever holds this link may view
// this one report".
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired share token")
	ErrMissingToken = errors.New("share token required")
)

// ShareTokenManager handles share-token generation and validation.
type ShareTokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// ShareClaims identifies the report a share link grants access to.
type ShareClaims struct {
	// ReceiptID or FolderID names the subject, exactly one is set.
	ReceiptID string `json:"receipt_id,omitempty"`
	FolderID  string `json:"folder_id,omitempty"`

	// Format is the report shape the link resolves to
	// (one, all, folder, folder-short, folder-long).
	Format string `json:"format"`

	jwt.RegisteredClaims
}

// NewShareTokenManager creates a manager with the given secret and link
// lifetime. secretKey should be a strong random string (e.g. 32 bytes).
func NewShareTokenManager(secretKey string, tokenDuration time.Duration) *ShareTokenManager {
	return &ShareTokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate creates a share token for the given subject and report format.
// id becomes the token's unique identifier (jti) and keys any state the
// caller associates with the link.
func (m *ShareTokenManager) Generate(id, receiptID, folderID, format string) (string, error) {
	now := time.Now()
	claims := &ShareClaims{
		ReceiptID: receiptID,
		FolderID:  folderID,
		Format:    format,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a share token, returning its claims.
func (m *ShareTokenManager) Validate(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ShareClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
