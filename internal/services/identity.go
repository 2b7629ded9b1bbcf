package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
)

// IdentityProvider confirms who a caller is and what role they hold. Token
// issuance, passwords and OAuth live in a separate identity service; this
// side only validates credentials it is handed.
type IdentityProvider interface {
	Authenticate(credential string) (*models.Identity, error)
}

type identityClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type jwtIdentityProvider struct {
	secretKey []byte
}

func NewJWTIdentityProvider(secret string) IdentityProvider {
	return &jwtIdentityProvider{secretKey: []byte(secret)}
}

// Authenticate implements IdentityProvider.
func (p *jwtIdentityProvider) Authenticate(credential string) (*models.Identity, error) {
	claims := &identityClaims{}

	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid credential: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}

	return &models.Identity{
		UserID: userID,
		Role:   models.Role(claims.Role),
	}, nil
}
