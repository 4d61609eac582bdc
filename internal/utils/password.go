package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an operator password with bcrypt at the given
// cost.  Only adminctl calls this; the API never handles plaintext
// passwords outside the login check.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against a login
// attempt in constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
