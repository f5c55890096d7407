package filter

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultDenyDomains are host tokens excluded from every result set.
var DefaultDenyDomains = []string{"bing.com", "microsoft.com", "baidu.com", ".gov"}

// Domains excludes result URLs by host.
type Domains struct {
	Deny []string
}

// NewDomains returns a Domains filter with the default deny-list.
func NewDomains() *Domains {
	return &Domains{Deny: DefaultDenyDomains}
}

// Blocked reports whether rawURL is unusable or its host contains a
// deny-listed token.
func (d *Domains) Blocked(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return true
	}
	for _, token := range d.Deny {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" && strings.Contains(host, token) {
			return true
		}
	}
	return false
}

// Own reports whether rawURL belongs to the registrable domain of
// engineDomain, e.g. cn.bing.com and www.bing.com both belong to bing.com.
func Own(rawURL, engineDomain string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	a, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	b, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(engineDomain))
	if err != nil {
		return false
	}
	return a == b
}

// Keep reports whether a result URL from the engine at engineDomain should
// be kept: absolute http(s), not the engine's own, not deny-listed.
func (d *Domains) Keep(rawURL, engineDomain string) bool {
	if !strings.HasPrefix(rawURL, "http") {
		return false
	}
	return !Own(rawURL, engineDomain) && !d.Blocked(rawURL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
