package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for i := 0; i < iterations; i++ {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// HashIP hashes a client IP with a salt using 5000 iterations of SHA256.
// The result is stored on vote rows for abuse auditing without keeping raw PII.
func HashIP(ip, salt string) string {
	return IteratedSHA256(salt+ip, 5000)
}

// LogPrefix returns a short, irreversible hash prefix of the IP address for
// log correlation. Not salted, so only suitable for logs, never storage.
func LogPrefix(ip string) string {
	return SHA256Hex(ip)[:12]
}
