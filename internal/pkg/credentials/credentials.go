// Package credentials wraps the one-way password hashing primitive used by
// the auth and user services.
package credentials

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor. 10 matches bcrypt.DefaultCost; kept
// explicit so the cost survives a library default change.
const HashCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
// Each call salts independently, so two hashes of the same input differ.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// bcrypt's comparison is constant-time with respect to the hash value.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
