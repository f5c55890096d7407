// Package filter holds the pure predicates used to drop boilerplate
// paragraphs and unwanted result domains.
package filter

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinLength is the shortest paragraph, in characters, that is kept.
const DefaultMinLength = 20

// DefaultKeywords mark verification, contact, download and legal boilerplate.
var DefaultKeywords = []string{"验证码", "手机号", "客户端", "二维码", "免责", "©", "提现", "举报", "版权", "微信"}

// Paragraphs rejects short texts, texts with boilerplate keywords and texts
// that embed a link.
type Paragraphs struct {
	MinLength int
	Keywords  []string
}

// NewParagraphs returns a Paragraphs filter with the default rules.
func NewParagraphs() *Paragraphs {
	return &Paragraphs{MinLength: DefaultMinLength, Keywords: DefaultKeywords}
}

// Accept reports whether text survives every rule.
func (f *Paragraphs) Accept(text string) bool {
	if utf8.RuneCountInString(text) < f.MinLength {
		return false
	}
	for _, kw := range f.Keywords {
		if kw != "" && strings.Contains(text, kw) {
			return false
		}
	}
	return !strings.Contains(text, "http")
}

// Apply returns the accepted texts in their original order.
func (f *Paragraphs) Apply(texts []string) []string {
	var kept []string
	for _, t := range texts {
		if f.Accept(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
