// Package password provides one-way password hashing for the auth module.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a salted bcrypt hash of the plaintext password. The cost
// factor is configurable; passing 0 (or any out-of-range value) selects the
// library default. No length or charset validation happens here.
func Hash(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether the plaintext matches the stored hash.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
