// Package sanitizer provides helpers for cleaning user-supplied form values
// and translator-supplied markup before they are stored, rendered or mailed.
//
// The functions fall into two groups:
//
//   - Strings – trimming, whitespace normalisation, null-byte removal and
//     length limiting for plain form values.
//
//   - Security – SanitizeInput for raw form fields, EscapeHTML for values
//     interpolated into markup, and SanitizeHTMLWithTags for formatted
//     translation strings that may carry a small set of presentational tags.
//
// Helpers can be chained with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.SanitizeInput,
//	    sanitizer.NormalizeWhitespace,
//	)
//
//	name := clean("  Acme   <Corp>  ") // "Acme Corp"
//
// # Error handling
//
// None of the helpers returns an error. Malformed input degrades to a safe
// result, usually an empty string.
//
// The package holds no state and is safe for concurrent use.
package sanitizer
