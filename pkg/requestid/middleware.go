package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header carries the request id in both directions.
	Header = "X-Request-ID"

	// RayHeader is set by Cloudflare on every proxied request.
	RayHeader = "CF-Ray"

	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware attaches a request id to the context and the response.
// A valid client-supplied X-Request-ID wins, then the Cloudflare ray id,
// then a fresh UUIDv4.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := resolve(r)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

func resolve(r *http.Request) string {
	for _, name := range []string{Header, RayHeader} {
		if id := r.Header.Get(name); valid(id) {
			return id
		}
	}
	return uuid.NewString()
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
