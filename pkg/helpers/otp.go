package helpers

import (
	"crypto/rand"
	"fmt"
)

// GenOTPCode generates a random 6-digit code as a zero-padded string.
// The code is what the visitor would receive on their phone; the mock
// acceptance policy does not compare against it.
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%06d", n%1000000), nil
}
