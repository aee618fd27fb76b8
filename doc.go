// Package website holds the per-visitor state of the ALZENT Digital site.
//
// A Session owns everything the form pipeline needs for one visitor: the
// chosen language, a durable storage namespace, the CSRF token store, the
// submission rate limiter, the translator and one formguard.Guard per form.
// Nothing is kept in package-level variables; the HTTP layer builds a
// Session per visitor and the CLI or tests build their own.
//
//	s, err := website.NewSession(kvstore.WithPrefix(store, "v:"+visitorID+":"), tr,
//		website.WithLanguage("es"),
//		website.WithGuardOptions(formguard.WithDispatcher(client)),
//	)
//	g, err := s.Guard("otc")
//	view, err := g.Submit(s.Context(ctx), values)
package website
