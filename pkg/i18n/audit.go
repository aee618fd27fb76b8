package i18n

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Severity grades an audit finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// AllowedTags are the only inline tags translation strings may carry.
var AllowedTags = []string{"span", "br", "strong", "em", "b", "i", "u"}

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)Function\s*\(`),
	regexp.MustCompile(`(?i)document\.write`),
	regexp.MustCompile(`(?i)innerHTML\s*=`),
	regexp.MustCompile(`(?i)outerHTML\s*=`),
	regexp.MustCompile(`(?i)\.src\s*=`),
	regexp.MustCompile(`(?i)\.href\s*=`),
}

var htmlTagRegex = regexp.MustCompile(`<(\w+)[^>]*>`)

// Finding is one problem reported by Audit.
type Finding struct {
	Severity Severity
	Language string
	Key      string
	Message  string
	// Sanitized is the value after the allowed-tags policy, offered as a fix.
	Sanitized string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", f.Severity, f.Language, f.Key, f.Message)
}

// AuditReport groups the findings of one audit run.
type AuditReport struct {
	Findings []Finding
}

// HasErrors reports whether any finding has error severity.
func (r AuditReport) HasErrors() bool {
	return slices.ContainsFunc(r.Findings, func(f Finding) bool { return f.Severity == SeverityError })
}

// Errors returns only error-severity findings.
func (r AuditReport) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Auditor scans catalogues for script injection and disallowed markup.
type Auditor struct {
	policy    *bluemonday.Policy
	allowed   []string
	required  []string
	requireIn []string
}

// AuditOption configures an Auditor.
type AuditOption func(*Auditor)

// WithRequiredLanguages reports an error for every listed language without a catalogue.
func WithRequiredLanguages(langs ...string) AuditOption {
	return func(a *Auditor) { a.requireIn = langs }
}

// WithRequiredKeys reports a warning for every listed key missing from a language.
func WithRequiredKeys(keys ...string) AuditOption {
	return func(a *Auditor) { a.required = keys }
}

// WithAllowedTags replaces AllowedTags.
func WithAllowedTags(tags ...string) AuditOption {
	return func(a *Auditor) { a.allowed = tags }
}

func NewAuditor(opts ...AuditOption) *Auditor {
	a := &Auditor{allowed: AllowedTags}
	for _, opt := range opts {
		opt(a)
	}

	a.policy = bluemonday.NewPolicy()
	a.policy.AllowElements(a.allowed...)
	a.policy.AllowAttrs("class").OnElements(a.allowed...)
	return a
}

// Audit checks every string value in catalogues. Dangerous patterns are
// errors; tags outside the allowed set are warnings.
func (a *Auditor) Audit(catalogues map[string]map[string]any) AuditReport {
	var report AuditReport

	for _, lang := range a.requireIn {
		if _, ok := catalogues[lang]; !ok {
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityError,
				Language: lang,
				Message:  "catalogue missing",
			})
		}
	}

	langs := make([]string, 0, len(catalogues))
	for lang := range catalogues {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		tree := catalogues[lang]
		for _, key := range a.required {
			if _, ok := lookup(tree, key); !ok {
				report.Findings = append(report.Findings, Finding{
					Severity: SeverityWarning,
					Language: lang,
					Key:      key,
					Message:  "required key missing",
				})
			}
		}
		walkStrings(tree, "", func(key, value string) {
			report.Findings = append(report.Findings, a.checkValue(lang, key, value)...)
		})
	}
	return report
}

func (a *Auditor) checkValue(lang, key, value string) []Finding {
	for _, p := range dangerousPatterns {
		if p.MatchString(value) {
			return []Finding{{
				Severity:  SeverityError,
				Language:  lang,
				Key:       key,
				Message:   "dangerous pattern " + p.String(),
				Sanitized: a.policy.Sanitize(value),
			}}
		}
	}

	var findings []Finding
	for _, m := range htmlTagRegex.FindAllStringSubmatch(value, -1) {
		tag := strings.ToLower(m[1])
		if slices.Contains(a.allowed, tag) {
			continue
		}
		findings = append(findings, Finding{
			Severity:  SeverityWarning,
			Language:  lang,
			Key:       key,
			Message:   fmt.Sprintf("tag <%s> not allowed (allowed: %s)", tag, strings.Join(a.allowed, ", ")),
			Sanitized: a.policy.Sanitize(value),
		})
	}
	return findings
}

// walkStrings visits string leaves in key order.
func walkStrings(tree map[string]any, prefix string, fn func(key, value string)) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch v := tree[k].(type) {
		case string:
			fn(path, v)
		case map[string]any:
			walkStrings(v, path, fn)
		}
	}
}

// Audit runs a default Auditor over the translator's catalogue.
func (t *Translator) Audit(opts ...AuditOption) AuditReport {
	return NewAuditor(opts...).Audit(t.Catalogue())
}
