package extract

// Position controls where in the text a brand alias may match.
type Position string

// Brand positions.
const (
	// PositionStart only matches an alias that opens the text. Supermarket
	// own-brands use it because their names also appear as store labels.
	PositionStart Position = "start"
	// PositionAny matches an alias on any word boundary.
	PositionAny Position = "any"
)

// BrandRule recognizes one brand under any of its aliases.
type BrandRule struct {
	Name     string   `yaml:"name"     json:"name"`
	Aliases  []string `yaml:"aliases"  json:"aliases,omitempty"`
	Position Position `yaml:"position" json:"position,omitempty"`
}

// WeightRule maps a size pattern to a canonical unit. The pattern's first
// capture group must hold the numeric value; Factor converts it to Unit.
type WeightRule struct {
	Pattern string  `yaml:"pattern" json:"pattern"`
	Unit    string  `yaml:"unit"    json:"unit"`
	Factor  float64 `yaml:"factor"  json:"factor,omitempty"`
}

// Rules is the full extraction rule table.
type Rules struct {
	Brands  []BrandRule  `yaml:"brands"  json:"brands"`
	Weights []WeightRule `yaml:"weights" json:"weights"`
}

// CanonicalUnits lists the unit symbols a weight rule may produce.
var CanonicalUnits = []string{"g", "kg", "ml", "l", "x"}

// DefaultRules returns the built-in UK grocery rule table.
func DefaultRules() Rules {
	return Rules{
		Brands:  DefaultBrands(),
		Weights: DefaultWeights(),
	}
}

// DefaultWeights returns the built-in size rules, most specific unit first.
func DefaultWeights() []WeightRule {
	return []WeightRule{
		{Pattern: `\b(\d+(?:\.\d+)?)\s*(?:kg|kgs|kilos?|kilograms?)\b`, Unit: "kg"},
		{Pattern: `\b(\d+(?:\.\d+)?)\s*(?:g|gr|gm|grams?)\b`, Unit: "g"},
		{Pattern: `\b(\d+(?:\.\d+)?)\s*(?:ml|millilitres?|milliliters?)\b`, Unit: "ml"},
		{Pattern: `\b(\d+(?:\.\d+)?)\s*cl\b`, Unit: "ml", Factor: 10},
		{Pattern: `\b(\d+(?:\.\d+)?)\s*(?:l|ltr|litres?|liters?)\b`, Unit: "l"},
		{Pattern: `\bx\s*(\d+)\b`, Unit: "x"},
		{Pattern: `\b(\d+)\s*(?:pcs|pc|pieces?|each|eggs|rolls|slices|sachets|teabags|tea bags)\b`, Unit: "x"},
	}
}

// DefaultBrands returns the built-in brand table. Order does not matter:
// the extractor tries longer aliases first.
func DefaultBrands() []BrandRule {
	return []BrandRule{
		// Supermarket own brands.
		{Name: "tesco", Aliases: []string{"tesco finest", "tesco"}, Position: PositionStart},
		{Name: "sainsburys", Aliases: []string{"sainsburys", "sainsbury", "by sainsburys"}, Position: PositionStart},
		{Name: "asda", Aliases: []string{"asda extra special", "asda"}, Position: PositionStart},
		{Name: "morrisons", Aliases: []string{"morrisons"}, Position: PositionStart},
		{Name: "ocado", Aliases: []string{"ocado"}, Position: PositionStart},
		{Name: "waitrose", Aliases: []string{"waitrose", "essential waitrose"}, Position: PositionStart},
		{Name: "coop", Aliases: []string{"co op", "coop"}, Position: PositionStart},
		{Name: "aldi", Aliases: []string{"aldi"}, Position: PositionStart},
		{Name: "lidl", Aliases: []string{"lidl"}, Position: PositionStart},
		{Name: "wilko", Aliases: []string{"wilko"}, Position: PositionStart},

		// Manufacturer brands.
		{Name: "dr oetker", Aliases: []string{"dr oetker", "oetker"}},
		{Name: "charlie bighams", Aliases: []string{"charlie bighams", "bighams"}},
		{Name: "ainsley harriott", Aliases: []string{"ainsley harriott"}},
		{Name: "al fez", Aliases: []string{"al fez", "alfez"}},
		{Name: "baxters", Aliases: []string{"baxters"}},
		{Name: "kelloggs", Aliases: []string{"kelloggs", "kellogg"}},
		{Name: "coca cola", Aliases: []string{"coca cola", "coke"}},
		{Name: "heinz", Aliases: []string{"heinz"}},
		{Name: "branston", Aliases: []string{"branston"}},
		{Name: "great scot", Aliases: []string{"great scot"}},
		{Name: "colmans", Aliases: []string{"colmans"}},
		{Name: "daddies", Aliases: []string{"daddies"}},
		{Name: "fray bentos", Aliases: []string{"fray bentos"}},
		{Name: "schwartz", Aliases: []string{"schwartz"}},
		{Name: "batchelors", Aliases: []string{"batchelors"}},
		{Name: "bisto", Aliases: []string{"bisto"}},
		{Name: "oxo", Aliases: []string{"oxo"}},
		{Name: "hovis", Aliases: []string{"hovis"}},
		{Name: "warburtons", Aliases: []string{"warburtons"}},
		{Name: "kingsmill", Aliases: []string{"kingsmill"}},
		{Name: "cathedral city", Aliases: []string{"cathedral city"}},
		{Name: "lurpak", Aliases: []string{"lurpak"}},
		{Name: "anchor", Aliases: []string{"anchor"}},
		{Name: "muller", Aliases: []string{"muller"}},
		{Name: "yeo valley", Aliases: []string{"yeo valley"}},
		{Name: "arla", Aliases: []string{"arla"}},
		{Name: "cravendale", Aliases: []string{"cravendale"}},
		{Name: "weetabix", Aliases: []string{"weetabix"}},
		{Name: "quaker", Aliases: []string{"quaker"}},
		{Name: "napolina", Aliases: []string{"napolina"}},
		{Name: "dolmio", Aliases: []string{"dolmio"}},
		{Name: "loyd grossman", Aliases: []string{"loyd grossman"}},
		{Name: "uncle bens", Aliases: []string{"uncle bens", "bens original"}},
		{Name: "tilda", Aliases: []string{"tilda"}},
		{Name: "john west", Aliases: []string{"john west"}},
		{Name: "princes", Aliases: []string{"princes"}},
		{Name: "walkers", Aliases: []string{"walkers"}},
		{Name: "pringles", Aliases: []string{"pringles"}},
		{Name: "cadbury", Aliases: []string{"cadbury", "cadburys"}},
		{Name: "nestle", Aliases: []string{"nestle"}},
		{Name: "mcvities", Aliases: []string{"mcvities"}},
		{Name: "pepsi", Aliases: []string{"pepsi"}},
		{Name: "robinsons", Aliases: []string{"robinsons"}},
		{Name: "ribena", Aliases: []string{"ribena"}},
		{Name: "pg tips", Aliases: []string{"pg tips"}},
		{Name: "yorkshire tea", Aliases: []string{"yorkshire tea"}},
		{Name: "twinings", Aliases: []string{"twinings"}},
		{Name: "typhoo", Aliases: []string{"typhoo"}},
		{Name: "nescafe", Aliases: []string{"nescafe"}},
		{Name: "kenco", Aliases: []string{"kenco"}},
		{Name: "birds eye", Aliases: []string{"birds eye"}},
		{Name: "mccain", Aliases: []string{"mccain"}},
		{Name: "pataks", Aliases: []string{"pataks"}},
		{Name: "old el paso", Aliases: []string{"old el paso"}},
		{Name: "hellmanns", Aliases: []string{"hellmanns"}},
		{Name: "marmite", Aliases: []string{"marmite"}},
		{Name: "kraft", Aliases: []string{"kraft"}},
	}
}
