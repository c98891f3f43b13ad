package querygen

import "github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"

// TemplateSet holds the fixed query templates for one documentation
// category. Model templates take a model name, manufacturer templates a
// manufacturer plus the boiler type, generic templates the boiler type.
type TemplateSet struct {
	Category     taxonomy.Category
	Model        []string
	Manufacturer []string
	Generic      []string
}

// DefaultTemplates returns the template sets for all four categories.
func DefaultTemplates() []TemplateSet {
	return []TemplateSet{
		{
			Category: taxonomy.CategoryFailure,
			Model: []string{
				"%s failure analysis PDF",
				"%s boiler tube failure case study",
				"%s incident report investigation",
				"%s root cause analysis failure",
			},
			Manufacturer: []string{
				"%s %s failure case study",
				"%s boiler failure modes effects analysis",
			},
			Generic: []string{
				"%s failure analysis research paper",
				"%s tube failure investigation report",
				"%s common failures troubleshooting",
			},
		},
		{
			Category: taxonomy.CategoryTechnical,
			Model: []string{
				"%s technical manual PDF",
				"%s design specifications datasheet",
				"%s engineering documentation",
				"%s technical reference guide",
			},
			Manufacturer: []string{
				"%s %s technical manual",
				"%s boiler specifications PDF",
				"%s engineering data book",
			},
			Generic: []string{
				"%s design manual PDF",
				"%s technical specifications handbook",
				"%s engineering reference material",
			},
		},
		{
			Category: taxonomy.CategoryTroubleshooting,
			Model: []string{
				"%s troubleshooting guide PDF",
				"%s maintenance manual procedures",
				"%s diagnostics handbook",
				"%s service manual repair",
			},
			Manufacturer: []string{
				"%s %s troubleshooting manual",
				"%s maintenance procedures guide",
			},
			Generic: []string{
				"%s troubleshooting diagnostics guide",
				"%s maintenance best practices",
				"%s operation troubleshooting manual",
			},
		},
		{
			Category: taxonomy.CategoryProduct,
			Model: []string{
				"%s product manual PDF",
				"%s installation guide commissioning",
				"%s operation maintenance manual",
				"%s user guide documentation",
			},
			Manufacturer: []string{
				"%s %s product catalog",
				"%s installation commissioning manual",
				"%s operation maintenance guide",
			},
			Generic: []string{
				"%s product specifications brochure",
				"%s installation manual PDF",
				"%s operation maintenance documentation",
			},
		},
	}
}

// TemplatesFor returns the template set for a category, or nil.
func TemplatesFor(category taxonomy.Category) *TemplateSet {
	for _, ts := range DefaultTemplates() {
		if ts.Category == category {
			return &ts
		}
	}
	return nil
}
