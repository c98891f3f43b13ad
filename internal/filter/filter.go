// Package filter decides whether a search candidate is worth fetching
// based on URL inspection alone. Content verification happens later in
// the fetcher.
package filter

import (
	"strings"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
)

// Policy selects how aggressive URL acceptance is.
type Policy string

const (
	// PolicyStrict is the canonical policy: domain exclusion, then
	// strong file-type indicators, then document keywords.
	PolicyStrict Policy = "strict"
	// PolicyPermissive accepts on any of a loose keyword list. Higher
	// recall, more false positives.
	PolicyPermissive Policy = "permissive"
)

// strongIndicators signal the target file type directly in the URL.
var strongIndicators = []string{".pdf", "/pdf/", "pdf?", "pdf&", "pdf#"}

// docKeywords are weaker document-content hints, consulted only when no
// strong indicator is present.
var docKeywords = []string{"document", "manual", "specification", "datasheet", "catalog"}

// permissiveKeywords is the loose list used by the permissive policy.
var permissiveKeywords = []string{"pdf", "download", "document", "manual", "specification", "datasheet", "catalog", "brochure", "handbook"}

// defaultExcludedDomains are known aggregator/viewer sites that never
// serve the raw file.
var defaultExcludedDomains = []string{
	"scribd.com", "slideshare.net", "researchgate.net",
	"academia.edu", "manualslib.com", "yumpu.com",
	"pdfcoffee.com", "directindustry.com", "datapdf.com",
}

// Filter classifies candidates by URL heuristics.
type Filter struct {
	policy          Policy
	excludedDomains []string
}

// New builds a filter with the given policy. Extra excluded domains are
// added to the built-in exclusion set.
func New(policy Policy, extraExcluded ...string) *Filter {
	return &Filter{
		policy:          policy,
		excludedDomains: append(append([]string{}, defaultExcludedDomains...), extraExcluded...),
	}
}

// Policy returns the active policy.
func (f *Filter) Policy() Policy { return f.policy }

// Accept reports whether the candidate should be fetched. Exclusion
// takes precedence over every positive indicator.
func (f *Filter) Accept(c catalog.Candidate) bool {
	urlLower := strings.ToLower(c.URL)

	for _, domain := range f.excludedDomains {
		if strings.Contains(urlLower, domain) {
			return false
		}
	}

	if f.policy == PolicyPermissive {
		return containsAny(urlLower, permissiveKeywords)
	}

	if containsAny(urlLower, strongIndicators) {
		return true
	}
	return containsAny(urlLower, docKeywords)
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
