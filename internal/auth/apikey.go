package auth

import "golang.org/x/crypto/bcrypt"

// HashAPIKey bcrypt-hashes a raw API key for storage, at bcrypt cost 12.
func HashAPIKey(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), 12)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey reports whether raw matches the stored bcrypt hash.
func VerifyAPIKey(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
