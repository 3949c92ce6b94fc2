// Package password stores credentials as a salted, iterated PBKDF2-HMAC-SHA256 hash.
//
// The stored form is the 64 character hex salt followed by the hex digest, so
// hashes written by the previous service remain verifiable.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 100000
	keyLength  = 32
	saltLength = 64
)

// Hash returns the stored form of password.
func Hash(password string) (string, error) {
	seed := make([]byte, 60)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("failed to read random salt: %w", err)
	}
	sum := sha256.Sum256(seed)
	salt := hex.EncodeToString(sum[:])

	return salt + digest(password, salt), nil
}

// Verify reports whether password matches the stored form.
func Verify(stored, password string) bool {
	if len(stored) <= saltLength {
		return false
	}
	salt, want := stored[:saltLength], stored[saltLength:]
	got := digest(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digest(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}
