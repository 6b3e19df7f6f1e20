package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	min = 100000
	max = 999999
)

// Generate returns a 6-digit numeric code uniformly distributed over
// [100000, 999999], so the code never has a leading zero.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+min), nil
}
