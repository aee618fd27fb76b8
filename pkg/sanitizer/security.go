package sanitizer

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultAllowedTags are the presentational tags translation strings may carry.
var DefaultAllowedTags = []string{"span", "br", "strong", "em"}

// blockedElements are removed together with their content.
var blockedElements = []string{"script", "style", "iframe", "object", "embed"}

// eventAttributes are always removed, even from allowed tags.
var eventAttributes = []string{"onclick", "onerror", "onload", "onmouseover"}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// SanitizeInput prepares a raw form value: it drops NUL bytes, trims
// surrounding whitespace and removes angle brackets.
func SanitizeInput(s string) string {
	if s == "" {
		return ""
	}

	s = RemoveNullBytes(s)
	s = strings.TrimSpace(s)
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

// EscapeHTML maps & < > " ' to named entities so the value can be placed
// inside markup without being parsed as tags.
func EscapeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlEscaper.Replace(s)
}

// SanitizeHTMLWithTags parses s as an HTML fragment, removes script-like
// elements with their content, strips every attribute except class and data-*
// on elements whose tag is in allowedTags, strips all attributes elsewhere,
// and renders the remaining markup. DefaultAllowedTags is used when
// allowedTags is empty. Unparseable input yields an empty string.
func SanitizeHTMLWithTags(s string, allowedTags ...string) string {
	if s == "" {
		return ""
	}
	if len(allowedTags) == 0 {
		allowedTags = DefaultAllowedTags
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), container)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, n := range nodes {
		if isBlocked(n) {
			continue
		}
		cleanNode(n, allowedTags)
		if err := html.Render(&b, n); err != nil {
			return ""
		}
	}

	return b.String()
}

func isBlocked(n *html.Node) bool {
	return n.Type == html.ElementNode && slices.Contains(blockedElements, strings.ToLower(n.Data))
}

func cleanNode(n *html.Node, allowedTags []string) {
	if n.Type == html.ElementNode {
		n.Attr = filterAttributes(n, allowedTags)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isBlocked(c) {
			n.RemoveChild(c)
		} else {
			cleanNode(c, allowedTags)
		}
		c = next
	}
}

func filterAttributes(n *html.Node, allowedTags []string) []html.Attribute {
	if !slices.Contains(allowedTags, strings.ToLower(n.Data)) {
		return nil
	}

	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		name := strings.ToLower(attr.Key)
		if slices.Contains(eventAttributes, name) {
			continue
		}
		if name == "class" || strings.HasPrefix(name, "data-") {
			kept = append(kept, attr)
		}
	}
	return kept
}
