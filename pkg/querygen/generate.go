package querygen

import (
	"fmt"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

// Query is one generated search query string with its provenance.
type Query struct {
	Text       string
	Category   taxonomy.Category
	BoilerType string
}

// Generate expands a taxonomy entry into the full query list for one
// category. Output is deterministic: model templates applied per model,
// manufacturer templates per manufacturer, then the generic templates.
// Length = |models|x|model templates| + |manufacturers|x|mfr templates|
// + |generic templates|.
func Generate(entry taxonomy.Entry, templates TemplateSet) []Query {
	queries := make([]Query, 0,
		len(entry.Models)*len(templates.Model)+
			len(entry.Manufacturers)*len(templates.Manufacturer)+
			len(templates.Generic))

	add := func(text string) {
		queries = append(queries, Query{
			Text:       text,
			Category:   templates.Category,
			BoilerType: entry.TypeName,
		})
	}

	for _, model := range entry.Models {
		for _, tmpl := range templates.Model {
			add(fmt.Sprintf(tmpl, model))
		}
	}

	for _, mfr := range entry.Manufacturers {
		for _, tmpl := range templates.Manufacturer {
			if countVerbs(tmpl) == 2 {
				add(fmt.Sprintf(tmpl, mfr, entry.TypeName))
			} else {
				add(fmt.Sprintf(tmpl, mfr))
			}
		}
	}

	for _, tmpl := range templates.Generic {
		add(fmt.Sprintf(tmpl, entry.TypeName))
	}

	return queries
}

// GenerateAll expands an entry across every category template set.
func GenerateAll(entry taxonomy.Entry) []Query {
	var queries []Query
	for _, ts := range DefaultTemplates() {
		queries = append(queries, Generate(entry, ts)...)
	}
	return queries
}

func countVerbs(tmpl string) int {
	n := 0
	for i := 0; i+1 < len(tmpl); i++ {
		if tmpl[i] == '%' && tmpl[i+1] == 's' {
			n++
		}
	}
	return n
}
