package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewDisplayCode returns a code of the form XXX-XXX-XXX with each symbol
// drawn uniformly from [A-Z0-9].
func NewDisplayCode() (string, error) {
	size := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, 0, 11)
	for i := 0; i < 9; i++ {
		if i > 0 && i%3 == 0 {
			buf = append(buf, '-')
		}
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate display code: %w", err)
		}
		buf = append(buf, codeAlphabet[n.Int64()])
	}
	return string(buf), nil
}
