package auth

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"golang.org/x/crypto/argon2"
)

const saltLen = 16

// NewSalt returns fresh random salt for HashPassword.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltLen)
}

// HashPassword derives an argon2id key from password and salt.
func HashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

// CheckPassword compares in constant time.
func CheckPassword(password string, salt, hash []byte) bool {
	return subtle.ConstantTimeCompare(HashPassword(password, salt), hash) == 1
}
