package domain

import "strings"

// nonNewsSuffixes covers code hosting, documentation, and package registries.
// Domains matching these are out of scope for credibility analysis when the
// reputation store has no verdict for them.
var nonNewsSuffixes = []string{
	"github.com",
	"github.io",
	"gitlab.com",
	"bitbucket.org",
	"npmjs.com",
	"pypi.org",
	"crates.io",
	"rubygems.org",
	"pkg.go.dev",
	"readthedocs.io",
	"stackoverflow.com",
	"stackexchange.com",
	"docs.rs",
	"developer.mozilla.org",
	"wikipedia.org",
}

// IsNonNewsDomain reports whether a normalized domain matches the known
// non-news patterns. Anything past this gate is the model's judgment call.
func IsNonNewsDomain(domain string) bool {
	for _, suffix := range nonNewsSuffixes {
		if domain == suffix || strings.HasSuffix(domain, "."+suffix) {
			return true
		}
	}
	return strings.HasPrefix(domain, "docs.")
}
