// Package cryptox hashes and verifies user passwords with argon2id.
//
// Hashes are stored as "argon2id$<salt>$<key>" with both parts in unpadded
// standard base64. The cost parameters are fixed for the whole application.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashScheme = "argon2id"
	saltSize   = 16
)

// ErrMalformedHash is returned when a stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

var b64 = base64.RawStdEncoding

// DeriveKey stretches password with salt into a 32-byte argon2id key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns the encoded argon2id hash of password using a fresh
// random salt.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltSize)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := DeriveKey(pw, salt)
	return strings.Join([]string{hashScheme, b64.EncodeToString(salt), b64.EncodeToString(key)}, "$")
}

// VerifyPassword reports whether password matches encoded. A malformed hash
// never matches and yields ErrMalformedHash.
func VerifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return false, ErrMalformedHash
	}
	salt, err := b64.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := b64.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	got := DeriveKey(pw, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
