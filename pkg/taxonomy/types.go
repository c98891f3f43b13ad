package taxonomy

import "strings"

// Entry is one top-level subject: a boiler type with the named model
// variants and manufacturers used to build search queries.
type Entry struct {
	ID            int      `json:"id"`
	TypeName      string   `json:"type_name"`
	Models        []string `json:"models"`
	Manufacturers []string `json:"manufacturers"`
}

// Category is one documentation category collected per boiler type.
type Category string

const (
	CategoryFailure         Category = "Failure Cases"
	CategoryTechnical       Category = "Technical Manuals"
	CategoryTroubleshooting Category = "Troubleshooting"
	CategoryProduct         Category = "Product Documentation"
)

// Categories lists all documentation categories in collection order.
func Categories() []Category {
	return []Category{
		CategoryFailure,
		CategoryTechnical,
		CategoryTroubleshooting,
		CategoryProduct,
	}
}

// FolderName returns the on-disk folder for a category.
func (c Category) FolderName() string {
	switch c {
	case CategoryFailure:
		return "failure"
	case CategoryTechnical:
		return "technical"
	case CategoryTroubleshooting:
		return "troubleshooting"
	case CategoryProduct:
		return "product"
	}
	return strings.ToLower(strings.ReplaceAll(string(c), " ", "_"))
}

// folderNames maps known boiler types to their fixed folder names.
var folderNames = map[string]string{
	"Subcritical Drum Boiler":               "subcritical_drum_boiler",
	"Supercritical Once-Through":            "supercritical_once_through",
	"Ultra-Supercritical":                   "ultra_supercritical",
	"CFB (Circulating Fluidized Bed)":       "cfb_circulating_fluidized_bed",
	"BFB (Bubbling Fluidized Bed)":          "bfb_bubbling_fluidized_bed",
	"HRSG (Heat Recovery Steam Generator)":  "hrsg_heat_recovery_steam_generator",
	"Package Water Tube":                    "package_water_tube",
	"Fire Tube Scotch Marine":               "fire_tube_scotch_marine",
	"Waste Heat Recovery Boiler":            "waste_heat_recovery_boiler",
	"Stoker-Fired Boiler":                   "stoker_fired_boiler",
	"Pulverized Coal (PC) Boiler":           "pulverized_coal_pc_boiler",
	"Biomass Boiler":                        "biomass_boiler",
	"Electric Boiler":                       "electric_boiler",
	"Condensing Boiler":                     "condensing_boiler",
	"Modular Boiler System":                 "modular_boiler_system",
}

// FolderName converts a boiler type to its folder name. Unknown types
// fall back to a lowercased, underscore-joined form.
func FolderName(typeName string) string {
	if name, ok := folderNames[typeName]; ok {
		return name
	}
	name := strings.ToLower(typeName)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
