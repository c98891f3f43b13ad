package querygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/taxonomy"
)

func testEntry() taxonomy.Entry {
	return taxonomy.Entry{
		ID:            1,
		TypeName:      "Subcritical Drum Boiler",
		Models:        []string{"B&W PC-1000", "CE VU-40"},
		Manufacturers: []string{"Babcock & Wilcox"},
	}
}

func TestGenerateCount(t *testing.T) {
	entry := testEntry()

	for _, ts := range DefaultTemplates() {
		ts := ts
		t.Run(string(ts.Category), func(t *testing.T) {
			queries := Generate(entry, ts)

			expected := len(entry.Models)*len(ts.Model) +
				len(entry.Manufacturers)*len(ts.Manufacturer) +
				len(ts.Generic)
			assert.Len(t, queries, expected)
		})
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	entry := testEntry()

	for _, ts := range DefaultTemplates() {
		queries := Generate(entry, ts)

		seen := make(map[string]bool, len(queries))
		for _, q := range queries {
			assert.False(t, seen[q.Text], "duplicate query %q", q.Text)
			seen[q.Text] = true
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	entry := testEntry()
	ts := *TemplatesFor(taxonomy.CategoryFailure)

	first := Generate(entry, ts)
	second := Generate(entry, ts)
	assert.Equal(t, first, second)
}

func TestGenerateProvenance(t *testing.T) {
	entry := testEntry()
	ts := *TemplatesFor(taxonomy.CategoryTechnical)

	queries := Generate(entry, ts)
	require.NotEmpty(t, queries)

	for _, q := range queries {
		assert.Equal(t, taxonomy.CategoryTechnical, q.Category)
		assert.Equal(t, "Subcritical Drum Boiler", q.BoilerType)
		assert.NotContains(t, q.Text, "%s")
	}

	// Model templates substitute the model name.
	assert.Equal(t, "B&W PC-1000 technical manual PDF", queries[0].Text)
	// Manufacturer templates with two slots get mfr + boiler type.
	assert.Contains(t, queries, Query{
		Text:       "Babcock & Wilcox Subcritical Drum Boiler technical manual",
		Category:   taxonomy.CategoryTechnical,
		BoilerType: "Subcritical Drum Boiler",
	})
}

func TestGenerateAllCoversEveryCategory(t *testing.T) {
	queries := GenerateAll(testEntry())

	byCategory := make(map[taxonomy.Category]int)
	for _, q := range queries {
		byCategory[q.Category]++
	}

	for _, cat := range taxonomy.Categories() {
		assert.Positive(t, byCategory[cat], "no queries for %s", cat)
	}
}

func TestGenerateEmptyEntry(t *testing.T) {
	entry := taxonomy.Entry{TypeName: "Electric Boiler"}
	ts := *TemplatesFor(taxonomy.CategoryProduct)

	queries := Generate(entry, ts)
	assert.Len(t, queries, len(ts.Generic))
}
