// Package template - Built-in industry templates
package template

import "energy-quote/core/types"

// universalQuestions appear in every built-in template regardless of
// industry: facility size, operating hours, known peak load, grid quality.
func universalQuestions() []types.Question {
	return []types.Question{
		{
			ID:       "facilitySize",
			Prompt:   "Facility size (sq ft)",
			Type:     types.QuestionNumber,
			Default:  10000.0,
			Unit:     "sq ft",
			Help:     "Total building/facility square footage",
			Required: false,
		},
		{
			ID:       "operatingHours",
			Prompt:   "Daily operating hours",
			Type:     types.QuestionNumber,
			Default:  12.0,
			Unit:     "hours",
			Help:     "Hours per day the facility operates",
			Required: true,
		},
		{
			ID:       "peakLoad",
			Prompt:   "Peak power demand (if known)",
			Type:     types.QuestionNumber,
			Default:  0.0,
			Unit:     "MW",
			Help:     "Optional: Actual peak load from utility bill (leave 0 for auto-calculation)",
			Required: false,
		},
		{
			ID:      "gridConnection",
			Prompt:  "Grid connection quality",
			Type:    types.QuestionSelect,
			Default: "reliable",
			Options: []types.QuestionOption{
				{Value: "reliable", Label: "Reliable Grid - Stable power, rare outages"},
				{Value: "unreliable", Label: "Unreliable Grid - Frequent outages"},
				{Value: "limited", Label: "Limited Capacity - Grid undersized for facility"},
				{Value: "off_grid", Label: "Off-Grid - No grid connection"},
				{Value: "microgrid", Label: "Microgrid - Independent power system"},
			},
			Help:     "Grid quality affects backup requirements and generation needs",
			Required: true,
		},
	}
}

func universalIDs() []string {
	return []string{"facilitySize", "operatingHours", "peakLoad", "gridConnection"}
}

func withUniversal(qs ...types.Question) []types.Question {
	return append(qs, universalQuestions()...)
}

func hotelTemplate() *types.Template {
	return &types.Template{
		Industry:     "hotel",
		ID:           "hotel",
		Version:      "2.3",
		CalculatorID: "hotel_load_v1",
		Questions: withUniversal(
			types.Question{ID: "rooms", Prompt: "Number of guest rooms", Type: types.QuestionNumber, Default: 120.0, Unit: "rooms", Required: true},
			types.Question{ID: "occupancyPct", Prompt: "Average occupancy", Type: types.QuestionNumber, Default: 65.0, Unit: "%", Required: true},
			types.Question{ID: "hasPool", Prompt: "Heated pool on site?", Type: types.QuestionBoolean, Default: false},
			types.Question{ID: "hasLaundry", Prompt: "On-site commercial laundry?", Type: types.QuestionBoolean, Default: true},
			types.Question{ID: "hasRestaurant", Prompt: "Full-service restaurant?", Type: types.QuestionBoolean, Default: false},
		),
		Parts: []types.TemplatePart{
			{ID: "basics", Label: "Property basics", QuestionIDs: []string{"rooms", "occupancyPct"}},
			{ID: "amenities", Label: "Amenities", QuestionIDs: []string{"hasPool", "hasLaundry", "hasRestaurant"}},
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			{To: "roomCount", From: "rooms"},
			{To: "occupancy", From: "occupancyPct", Scale: 0.01},
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000}, // MW -> kW
		},
	}
}

func officeTemplate() *types.Template {
	return &types.Template{
		Industry:     "office",
		ID:           "office",
		Version:      "1.7",
		CalculatorID: "office_load_v1",
		Questions: withUniversal(
			types.Question{ID: "employees", Prompt: "Number of employees on site", Type: types.QuestionNumber, Default: 100.0, Required: true},
			types.Question{ID: "floors", Prompt: "Number of floors", Type: types.QuestionNumber, Default: 3.0},
			types.Question{ID: "hasDataRoom", Prompt: "On-site server/data room?", Type: types.QuestionBoolean, Default: false},
		),
		Parts: []types.TemplatePart{
			{ID: "staffing", Label: "Staffing", QuestionIDs: []string{"employees", "floors", "hasDataRoom"}},
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			{To: "headcount", From: "employees"},
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000},
		},
	}
}

func groceryTemplate() *types.Template {
	return &types.Template{
		Industry:     "grocery",
		ID:           "grocery",
		Version:      "1.4",
		CalculatorID: "grocery_load_v1",
		Questions: withUniversal(
			types.Question{ID: "salesFloorSqFt", Prompt: "Sales floor area (sq ft)", Type: types.QuestionNumber, Default: 30000.0, Unit: "sq ft", Required: true},
			types.Question{ID: "refrigerationCases", Prompt: "Refrigeration case count", Type: types.QuestionNumber, Default: 40.0, Required: true},
			types.Question{ID: "hasBakery", Prompt: "In-store bakery?", Type: types.QuestionBoolean, Default: true},
		),
		Parts: []types.TemplatePart{
			{ID: "store", Label: "Store", QuestionIDs: []string{"salesFloorSqFt", "refrigerationCases", "hasBakery"}},
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			{To: "salesFloor", From: "salesFloorSqFt"},
			{To: "caseCount", From: "refrigerationCases"},
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000},
		},
	}
}

func manufacturingTemplate() *types.Template {
	return &types.Template{
		Industry:     "manufacturing",
		ID:           "manufacturing",
		Version:      "1.9",
		CalculatorID: "manufacturing_load_v1",
		Questions: withUniversal(
			types.Question{ID: "shifts", Prompt: "Production shifts per day", Type: types.QuestionNumber, Default: 2.0, Required: true},
			types.Question{ID: "connectedLoadKW", Prompt: "Connected equipment load (kW)", Type: types.QuestionNumber, Default: 500.0, Unit: "kW", Required: true},
			types.Question{ID: "processHeat", Prompt: "Electric process heating?", Type: types.QuestionBoolean, Default: false},
		),
		Parts: []types.TemplatePart{
			{ID: "production", Label: "Production", QuestionIDs: []string{"shifts", "connectedLoadKW", "processHeat"}},
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			{To: "shiftCount", From: "shifts"},
			{To: "connectedKW", From: "connectedLoadKW"},
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000},
		},
	}
}

func dataCenterTemplate() *types.Template {
	return &types.Template{
		Industry:     "data_center",
		ID:           "data_center",
		Version:      "1.2",
		CalculatorID: "data_center_load_v1",
		Questions: withUniversal(
			types.Question{ID: "racks", Prompt: "Number of IT racks", Type: types.QuestionNumber, Default: 50.0, Required: true},
			types.Question{ID: "kwPerRack", Prompt: "Average kW per rack", Type: types.QuestionNumber, Default: 8.0, Unit: "kW", Required: true},
			types.Question{ID: "pue", Prompt: "Power usage effectiveness (PUE)", Type: types.QuestionNumber, Default: 1.5},
		),
		Parts: []types.TemplatePart{
			{ID: "it", Label: "IT load", QuestionIDs: []string{"racks", "kwPerRack", "pue"}},
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			// IT load is the product of rack count and per-rack draw
			{To: "itLoadKW", Combine: []string{"racks", "kwPerRack"}, Op: types.CombineProduct},
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000},
		},
	}
}

func genericTemplate() *types.Template {
	return &types.Template{
		Industry:     "generic",
		ID:           "generic",
		Version:      "1.0",
		CalculatorID: "generic_load_v1",
		Questions:    universalQuestions(),
		Parts: []types.TemplatePart{
			{ID: "facility", Label: "Facility", QuestionIDs: universalIDs()},
		},
		Mapping: []types.MappingRule{
			{To: "peakLoadKW", From: "peakLoad", Scale: 1000},
		},
	}
}

func init() {
	for _, t := range []*types.Template{
		hotelTemplate(),
		officeTemplate(),
		groceryTemplate(),
		manufacturingTemplate(),
		dataCenterTemplate(),
		genericTemplate(),
	} {
		Default.Register(t)
	}
}
