package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Derive computes the device-binding hash for a request origin: a
// deterministic sha256 over the user-agent string and the client network
// identifier. Same inputs always yield the same hash; the token service
// treats the result as opaque.
func Derive(userAgent, clientIP string) string {
	h := sha256.New()
	h.Write([]byte(userAgent))
	h.Write([]byte{0})
	h.Write([]byte(clientIP))
	return hex.EncodeToString(h.Sum(nil))
}
