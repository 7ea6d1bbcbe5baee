package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	generatedPasswordLen = 12
	pwSymbols            = "!@#$%&*"
	pwUpper              = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	pwLower              = "abcdefghijkmnopqrstuvwxyz"
	pwDigits             = "23456789"
)

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// GenerateAdminPassword returns a random password with at least one upper,
// lower, digit and symbol character. Ambiguous glyphs (I, l, O, 0, 1) are left
// out because the password is read off a terminal. Do not log it.
func GenerateAdminPassword() (string, error) {
	classes := []string{pwUpper, pwLower, pwDigits, pwSymbols}
	all := pwUpper + pwLower + pwDigits + pwSymbols

	out := make([]byte, generatedPasswordLen)
	for i := range out {
		set := all
		if i < len(classes) {
			set = classes[i]
		}
		j, err := randomIndex(len(set))
		if err != nil {
			return "", err
		}
		out[i] = set[j]
	}
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", fmt.Errorf("shuffle: %w", err)
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
