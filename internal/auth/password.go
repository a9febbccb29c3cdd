package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the shared officer credential with the configured
// cost. Operators use it to provision AUTH_OFFICER_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a presented credential against the configured hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
