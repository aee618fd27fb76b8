package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers consulted by GetIP, in priority order.
var Headers = []string{
	"CF-Connecting-IP",
	"True-Client-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the originating client address of r. The site is served
// behind Cloudflare, so its headers win over generic proxy headers, and the
// TCP peer address is the last resort. X-Forwarded-For contributes its first
// valid entry. An empty string means no valid address was found.
func GetIP(r *http.Request) string {
	for _, name := range Headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an address. Zones are rejected and
// IPv4-mapped IPv6 addresses are unmapped.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return ""
	}
	return addr.Unmap().String()
}
