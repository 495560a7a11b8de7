package jwt

import (
	"errors"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", "partner-onboarding", time.Minute, 2*time.Minute)
	uid := uuid.NewString()

	pair, err := svc.GenerateTokenPair(uid, "test@mail.com", "partner")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uid, claims.UID)
	assert.Equal(t, uid, claims.Subject)
	assert.Equal(t, "partner-onboarding", claims.Issuer)
	assert.Equal(t, "test@mail.com", claims.Email)
	assert.Equal(t, "partner", claims.Role)
}

func TestJWTService_ValidateInvalidToken(t *testing.T) {
	svc := NewJWTService("secret", "", time.Minute, 2*time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "", time.Minute, time.Minute)
	verifier := NewJWTService("secret-b", "", time.Minute, time.Minute)

	pair, err := issuer.GenerateTokenPair("uid-1", "a@b.com", "partner")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", "", -time.Second, -time.Second)

	pair, err := svc.GenerateTokenPair(uuid.NewString(), "expired@mail.com", "partner")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateWrongSigningMethod(t *testing.T) {
	svc := NewJWTService("secret", "", time.Minute, 2*time.Minute)

	claims := gjwt.MapClaims{
		"uid":   uuid.NewString(),
		"email": "x@y.z",
		"role":  "partner",
		"exp":   time.Now().Add(time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"nbf":   time.Now().Unix(),
	}
	unsigned := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims)
	tokenStr, err := unsigned.SignedString(gjwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateMissingUID(t *testing.T) {
	svc := NewJWTService("secret", "", time.Minute, time.Minute)

	pair, err := svc.GenerateTokenPair("", "x@y.z", "partner")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_SignError(t *testing.T) {
	orig := signJWTToken
	t.Cleanup(func() { signJWTToken = orig })
	signJWTToken = func(*gjwt.Token, []byte) (string, error) { return "", errors.New("sign failed") }

	svc := NewJWTService("secret", "", time.Minute, time.Minute)
	_, err := svc.GenerateTokenPair("uid", "x@y.z", "partner")
	assert.Error(t, err)
}
