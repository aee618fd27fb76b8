// Package clientip resolves the visitor's IP address for requests that reach
// the site through Cloudflare or another reverse proxy.
//
// Headers are checked in the order listed in Headers, then RemoteAddr.
// Invalid entries are skipped, so a spoofed garbage header falls through to
// the next source.
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware)
//	r.Post("/api/send-email", func(w http.ResponseWriter, r *http.Request) {
//	    ip := clientip.FromRequest(r)
//	    ...
//	})
//
// The address is only as trustworthy as the proxy in front of the server.
package clientip
