package taxonomy

// BoilerDataset returns the full built-in taxonomy of industrial boiler
// types with representative models and manufacturers.
func BoilerDataset() []Entry {
	return []Entry{
		{ID: 1, TypeName: "Subcritical Drum Boiler",
			Models:        []string{"B&W PC-1000", "CE VU-40", "Foster Wheeler SD"},
			Manufacturers: []string{"Babcock & Wilcox", "Combustion Engineering", "Foster Wheeler"}},
		{ID: 2, TypeName: "Supercritical Once-Through",
			Models:        []string{"B&W SWUP", "Alstom SC-800", "MHI Benson"},
			Manufacturers: []string{"Babcock & Wilcox", "Alstom", "Mitsubishi Heavy Industries"}},
		{ID: 3, TypeName: "Ultra-Supercritical",
			Models:        []string{"GE USC-1000", "Doosan USC", "Siemens SST"},
			Manufacturers: []string{"GE Power", "Doosan", "Siemens"}},
		{ID: 4, TypeName: "CFB (Circulating Fluidized Bed)",
			Models:        []string{"Foster Wheeler Compact", "Alstom CFB-300", "Sumitomo CFB"},
			Manufacturers: []string{"Foster Wheeler", "Alstom", "Sumitomo SHI FW"}},
		{ID: 5, TypeName: "BFB (Bubbling Fluidized Bed)",
			Models:        []string{"Valmet BFB", "Andritz EcoFluid", "B&W Towerpak"},
			Manufacturers: []string{"Valmet", "Andritz", "Babcock & Wilcox"}},
		{ID: 6, TypeName: "HRSG (Heat Recovery Steam Generator)",
			Models:        []string{"Nooter/Eriksen HRSG", "CMI HRSG", "Vogt HRSG"},
			Manufacturers: []string{"Nooter/Eriksen", "CMI Energy", "Vogt Power"}},
		{ID: 7, TypeName: "Package Water Tube",
			Models:        []string{"B&W FM", "Cleaver-Brooks D-Style", "Rentech D-Type"},
			Manufacturers: []string{"Babcock & Wilcox", "Cleaver-Brooks", "Rentech"}},
		{ID: 8, TypeName: "Fire Tube Scotch Marine",
			Models:        []string{"Cleaver-Brooks CB", "Hurst S500", "York-Shipley SPH"},
			Manufacturers: []string{"Cleaver-Brooks", "Hurst Boiler", "York-Shipley"}},
		{ID: 9, TypeName: "Waste Heat Recovery Boiler",
			Models:        []string{"AC Boilers WHR", "Thermax WHRB", "Alfa Laval Aalborg"},
			Manufacturers: []string{"AC Boilers", "Thermax", "Alfa Laval"}},
		{ID: 10, TypeName: "Stoker-Fired Boiler",
			Models:        []string{"Detroit DTS", "Riley Power TSG", "B&W Sterling"},
			Manufacturers: []string{"Detroit Stoker", "Riley Power", "B&W"}},
		{ID: 11, TypeName: "Pulverized Coal (PC) Boiler",
			Models:        []string{"B&W Carolina", "CE Tangential", "Foster Wheeler Arch"},
			Manufacturers: []string{"B&W", "Combustion Engineering", "Foster Wheeler"}},
		{ID: 12, TypeName: "Biomass Boiler",
			Models:        []string{"DP CleanTech", "Valmet CYMIC", "B&W Vølund"},
			Manufacturers: []string{"DP CleanTech", "Valmet", "B&W Vølund"}},
		{ID: 13, TypeName: "Electric Boiler",
			Models:        []string{"Fulton FB-E", "Chromalox CES", "Precision MPB"},
			Manufacturers: []string{"Fulton", "Chromalox", "Precision Boilers"}},
		{ID: 14, TypeName: "Condensing Boiler",
			Models:        []string{"Viessmann Vitodens", "Buderus GB", "Bosch Condens"},
			Manufacturers: []string{"Viessmann", "Buderus", "Bosch"}},
		{ID: 15, TypeName: "Modular Boiler System",
			Models:        []string{"Lochinvar CREST", "Aerco Benchmark", "RBI Torus"},
			Manufacturers: []string{"Lochinvar", "Aerco", "RBI"}},
	}
}
