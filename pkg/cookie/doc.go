// Package cookie writes and reads HTTP cookies with shared attribute
// defaults, plus tamper-evident signed cookies.
//
// The site identifies returning visitors with a signed random id so that a
// client cannot pick another visitor's storage namespace:
//
//	m, err := cookie.New([]string{secret})
//	m.SetSigned(w, "alzent_vid", uuid.NewString(), cookie.WithMaxAge(365*24*3600))
//	id, err := m.GetSigned(r, "alzent_vid")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// forged or signed with a retired secret
//	}
//
// Secrets must be at least 32 bytes. Passing several secrets enables
// rotation: new cookies are signed with the first, any of them verifies.
package cookie
