package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordWithCost("Password123!", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestHashPasswordWithCost_OutOfRangeFallsBack(t *testing.T) {
	orig := bcryptGenerateFromPassword
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })

	var gotCost int
	bcryptGenerateFromPassword = func(p []byte, cost int) ([]byte, error) {
		gotCost = cost
		return []byte("hash"), nil
	}

	_, err := HashPasswordWithCost("pw", 99)
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, gotCost)
}

func TestHashPassword_ErrorBranch(t *testing.T) {
	orig := bcryptGenerateFromPassword
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!")
	assert.Error(t, err)
}
