package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testUser(role string) *User {
	return &User{ID: uuid.New().String(), Email: "test@example.com", Role: role}
}

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	user := testUser(RoleMessOwner)

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.Subject != user.ID {
		t.Fatalf("Expected subject %s, got %s", user.ID, claims.Subject)
	}
	if claims.Email != user.Email {
		t.Fatalf("Expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != RoleMessOwner {
		t.Fatalf("Expected role %s, got %s", RoleMessOwner, claims.Role)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(time.Now()) > tokenTTL {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(testUser(RoleStudent))
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestValidateTokenRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	secret := []byte("test-secret-key-12345")
	now := time.Now()

	valid := func() Claims {
		return Claims{
			Email: "a@example.com",
			Role:  RoleStudent,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Claims)
	}{
		{"expired", func(c *Claims) { c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour)) }},
		{"no expiry", func(c *Claims) { c.ExpiresAt = nil }},
		{"no subject", func(c *Claims) { c.Subject = "" }},
		{"foreign issuer", func(c *Claims) { c.Issuer = "someone-else" }},
		{"unknown role", func(c *Claims) { c.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := valid()
			tt.mutate(&claims)
			token := signClaims(t, jwt.SigningMethodHS256, secret, claims)

			if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}

	t.Run("other hmac method", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodHS512, secret, valid())
		if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken(testUser(RoleStudent)); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}
}

func TestGenerateTokenRequiresSavedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	if _, err := GenerateToken(&User{Email: "a@example.com", Role: RoleStudent}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
