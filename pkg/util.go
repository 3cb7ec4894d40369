package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomString returns a URL-safe, base64 encoded
// securely generated random string of n random bytes.
func GenerateRandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random string length must be positive")
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// FileExists reports whether path points to an existing regular file
func FileExists(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !stat.IsDir()
}
