package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/alzentdigital/website/pkg/clientip"
)

// maxKeyLength bounds storage keys built by Composite.
const maxKeyLength = 64

// KeyFunc extracts the rate limit key from a request.
type KeyFunc func(*http.Request) string

// ByClientIP keys requests by the resolved client address.
func ByClientIP(r *http.Request) string {
	return clientip.FromRequest(r)
}

// ByPath keys requests by URL path.
func ByPath(r *http.Request) string {
	return r.URL.Path
}

// Composite joins the non-empty keys of keyFuncs with ":". Results longer
// than 64 characters are replaced by 32 hex characters of their SHA-256.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}

		return combined
	}
}
