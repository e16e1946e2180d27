package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID, "Customer", "cli@bank.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Valid token should pass validation
	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	// Extract claims
	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Customer", claims.Role)
	assert.Equal(t, "cli@bank.com", claims.Email)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute)) // already expired

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID, "Operator", "op@bank.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validation should fail
	err = j.Validate(ctx, token)
	assert.Error(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	err := j.Validate(ctx, "invalid.token.string")
	assert.Error(t, err)

	claims, err := j.GetClaims(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_WrongSecret(t *testing.T) {
	ctx := context.Background()

	j1 := New(WithSecretKey("secret-one"), WithExpiration(time.Minute))
	j2 := New(WithSecretKey("secret-two"), WithExpiration(time.Minute))

	token, err := j1.Generate(ctx, uuid.New(), "Customer", "cli@bank.com")
	assert.NoError(t, err)

	err = j2.Validate(ctx, token)
	assert.Error(t, err)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	r, _ := http.NewRequest(http.MethodGet, "/", nil)

	// Missing header
	_, err := j.GetTokenFromRequest(ctx, r)
	assert.Error(t, err)

	// Malformed header
	r.Header.Set("Authorization", "Token abc")
	_, err = j.GetTokenFromRequest(ctx, r)
	assert.Error(t, err)

	// Valid bearer header
	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := j.GetTokenFromRequest(ctx, r)
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
