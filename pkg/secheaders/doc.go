// Package secheaders adds the browser security headers every site
// response carries: frame denial, MIME sniffing protection, referrer and
// permissions policies, HSTS and the content security policy.
//
//	r.Use(secheaders.Middleware(secheaders.Default()))
package secheaders
