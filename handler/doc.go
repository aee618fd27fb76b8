// Package handler binds HTTP requests into typed values and renders typed
// responses for the site's JSON API.
//
// A HandlerFunc receives a Context and a request value filled by the
// configured binders, and returns a Response:
//
//	type blurRequest struct {
//		Field string `json:"field"`
//		Value string `json:"value"`
//	}
//
//	blur := handler.HandlerFunc[handler.Context, blurRequest](
//		func(ctx handler.Context, req blurRequest) handler.Response {
//			return handler.Signals(view)
//		},
//	)
//	r.Post("/api/forms/{formID}/blur", handler.Wrap(blur,
//		handler.WithBinders[handler.Context, blurRequest](handler.BindSignals(), handler.BindJSON()),
//	))
//
// # Responses
//
// JSON wraps values in JSONResponse unless WithoutEnvelope is given. Signals
// answers DataStar clients with a patch-signals event and everyone else with
// plain JSON, so one route serves both the scripted forms and DataStar pages.
// Empty and EmptyWithStatus write a status code only.
//
// # Errors
//
// Binding and rendering errors go to the ErrorHandler. NewErrorHandler logs
// them with the request id and maps HTTPError, ValidationError and binder
// errors onto status codes through ClassifyError.
package handler
