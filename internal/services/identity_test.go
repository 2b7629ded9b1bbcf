package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uuid.UUID, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	provider := NewJWTIdentityProvider(testSecret)

	identity, err := provider.Authenticate(
		signToken(t, testSecret, userID, "employer", time.Now().Add(time.Hour)),
	)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if identity.UserID != userID {
		t.Errorf("UserID = %s, want %s", identity.UserID, userID)
	}
	if identity.Role != models.RoleEmployer {
		t.Errorf("Role = %s, want %s", identity.Role, models.RoleEmployer)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	userID := uuid.New()
	provider := NewJWTIdentityProvider(testSecret)

	tests := []struct {
		name       string
		credential string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", userID, "candidate", time.Now().Add(time.Hour))},
		{"expired", signToken(t, testSecret, userID, "candidate", time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := provider.Authenticate(tt.credential); err == nil {
				t.Error("Authenticate() error = nil, want rejection")
			}
		})
	}
}

func TestAuthenticateRejectsMalformedUserID(t *testing.T) {
	provider := NewJWTIdentityProvider(testSecret)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "not-a-uuid",
		"role":    "candidate",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	if _, err := provider.Authenticate(signed); err == nil {
		t.Error("Authenticate() error = nil, want invalid user id rejection")
	}
}
