// Package features describes the inputs of the price estimate: the numeric
// slider ranges, the categorical selectors, the well-known localities and the
// order in which the model consumes them.
package features

// Numeric feature names.
const (
	CrimeRate          = "CRIME_RATE"
	GreenArea          = "GREEN_AREA"
	IndustrialArea     = "INDUSTRIAL_AREA"
	PollutionLevel     = "POLLUTION_LEVEL"
	AvgRooms           = "AVG_ROOMS"
	HouseAge           = "HOUSE_AGE"
	EmploymentDistance = "EMPLOYMENT_DISTANCE"
	PropertyTax        = "PROPERTY_TAX"
	TeacherRatio       = "TEACHER_RATIO"
	MigrantPopulation  = "MIGRANT_POPULATION"
	LowIncomePop       = "LOW_INCOME_POP"
)

// Categorical feature names.
const (
	RiverProximity = "RIVER_PROXIMITY"
	LocalityRank   = "LOCALITY_RANK"
)

// UnknownDescription is shown for a categorical value with no option.
const UnknownDescription = "No description available"

// Range bounds a numeric feature slider.
type Range struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Contains reports whether v lies within the slider bounds.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Option is one choice of a categorical selector.
type Option struct {
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Categorical is a selector with its options and the value assumed when a
// submission omits it.
type Categorical struct {
	Name    string   `json:"name"`
	Default int      `json:"default"`
	Options []Option `json:"options"`
}

// Locality is a well-known neighbourhood shown alongside the form.
type Locality struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog holds everything the form and the model need to know about the inputs.
type Catalog struct {
	Ranges       []Range
	Categoricals []Categorical
	Localities   []Locality
	Descriptions map[string]string
}

// Default returns the catalog for the Bhubaneswar dataset.
func Default() Catalog {
	return Catalog{
		Ranges: []Range{
			{Name: CrimeRate, Min: 0.0, Max: 10.0, Step: 0.1, Default: 0.6},
			{Name: GreenArea, Min: 0.0, Max: 100.0, Step: 1.0, Default: 11.0},
			{Name: IndustrialArea, Min: 0.0, Max: 25.0, Step: 0.5, Default: 11.0},
			{Name: PollutionLevel, Min: 0.3, Max: 0.9, Step: 0.01, Default: 0.55},
			{Name: AvgRooms, Min: 3.0, Max: 9.0, Step: 0.1, Default: 6.2},
			{Name: HouseAge, Min: 0.0, Max: 100.0, Step: 1.0, Default: 68.0},
			{Name: EmploymentDistance, Min: 1.0, Max: 12.0, Step: 0.1, Default: 3.8},
			{Name: PropertyTax, Min: 150, Max: 500, Step: 10, Default: 330},
			{Name: TeacherRatio, Min: 12.0, Max: 22.0, Step: 0.1, Default: 18.5},
			{Name: MigrantPopulation, Min: 0.0, Max: 400.0, Step: 1.0, Default: 356.0},
			{Name: LowIncomePop, Min: 1.0, Max: 40.0, Step: 0.5, Default: 12.5},
		},
		Categoricals: []Categorical{
			{
				Name:    RiverProximity,
				Default: 0,
				Options: []Option{
					{Value: 0, Label: "Not Near River", Description: "Property is not near Kuakhai River"},
					{Value: 1, Label: "Near Kuakhai River", Description: "Property is near Kuakhai River (Premium Location)"},
				},
			},
			{
				Name:    LocalityRank,
				Default: 3,
				Options: []Option{
					{Value: 1, Label: "Tier 1 - Premium", Description: "Premium areas like Nayapalli, Saheed Nagar"},
					{Value: 2, Label: "Tier 2 - High", Description: "High-end areas like Bapuji Nagar, Ashok Nagar"},
					{Value: 3, Label: "Tier 3 - Medium", Description: "Medium areas like Patia, Chandrasekharpur"},
					{Value: 4, Label: "Tier 4 - Standard", Description: "Standard residential areas"},
					{Value: 5, Label: "Tier 5 - Basic", Description: "Basic residential areas"},
				},
			},
		},
		Localities: []Locality{
			{Name: "Nayapalli", Description: "Premium residential area near government offices"},
			{Name: "Saheed Nagar", Description: "Well-developed residential colony with good amenities"},
			{Name: "Bapuji Nagar", Description: "Central location with shopping facilities"},
			{Name: "Ashok Nagar", Description: "Residential area near Master Canteen"},
			{Name: "Kharavel Nagar", Description: "Commercial and residential hub"},
			{Name: "Patia", Description: "IT hub with modern apartments"},
			{Name: "Chandrasekharpur", Description: "IT corridor with good connectivity"},
			{Name: "Vani Vihar", Description: "Near educational institutions"},
			{Name: "Rasulgarh", Description: "Industrial and residential area"},
			{Name: "Baramunda", Description: "Near bus stand, affordable housing"},
		},
		Descriptions: map[string]string{
			CrimeRate:          "Crime rate in the area (per capita). Lower is better.",
			GreenArea:          "Percentage of green spaces and parks in the area.",
			IndustrialArea:     "Percentage of land used for industrial purposes. Lower is generally better for residential areas.",
			RiverProximity:     "Whether the property is near Kuakhai River (premium feature).",
			PollutionLevel:     "Air pollution levels in the area. Lower is better.",
			AvgRooms:           "Average number of rooms in houses in the area.",
			HouseAge:           "Average age of houses in the area (in years).",
			EmploymentDistance: "Distance to major employment centers (in km).",
			LocalityRank:       "Quality rank of the locality (1 being the best).",
			PropertyTax:        "Annual property tax rate.",
			TeacherRatio:       "Student-teacher ratio in local schools. Lower is better.",
			MigrantPopulation:  "Percentage of migrant population in the area.",
			LowIncomePop:       "Percentage of low-income population in the area.",
		},
	}
}

// Range looks up a numeric feature by name.
func (c Catalog) Range(name string) (Range, bool) {
	for _, r := range c.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// Categorical looks up a selector by name.
func (c Catalog) Categorical(name string) (Categorical, bool) {
	for _, cat := range c.Categoricals {
		if cat.Name == name {
			return cat, true
		}
	}
	return Categorical{}, false
}

// Describe returns the description of a selector option. Unknown selectors and
// values without an option yield UnknownDescription.
func (c Catalog) Describe(name string, value int) string {
	cat, ok := c.Categorical(name)
	if !ok {
		return UnknownDescription
	}
	for _, opt := range cat.Options {
		if opt.Value == value {
			return opt.Description
		}
	}
	return UnknownDescription
}
