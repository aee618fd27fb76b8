package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used whenever negotiation yields nothing usable.
const DefaultLanguage = "en"

// SupportedLanguages lists the languages shipped with the built-in catalogue.
var SupportedLanguages = []string{"en", "es", "pt", "it", "ru", "zh"}

// maxAcceptLanguageLength bounds the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

// ParseAcceptLanguage picks the best supported base language for an
// Accept-Language header, honouring quality values. Regional variants match
// their base language (pt-BR matches pt). Returns defaultLang when nothing matches.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return defaultLang
	}

	for _, pref := range prefs {
		base, conf := pref.Base()
		if conf == language.No {
			continue
		}
		if lang := strings.ToLower(base.String()); containsFold(supported, lang) {
			return lang
		}
	}
	return defaultLang
}

// NormalizeLanguage lower-cases code and reduces it to a supported base
// language. It returns "" when code is not supported.
func NormalizeLanguage(code string, supported []string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || len(code) > maxLangCodeLength {
		return ""
	}
	if len(supported) == 0 || containsFold(supported, code) {
		return code
	}
	if idx := strings.IndexAny(code, "-_"); idx > 0 && containsFold(supported, code[:idx]) {
		return code[:idx]
	}
	return ""
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
