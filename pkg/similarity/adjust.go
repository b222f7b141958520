package similarity

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Adjustment names and magnitudes.
const (
	AdjProductType     = "product_type_mismatch"
	AdjMultipack       = "multipack_mismatch"
	AdjVariantMatch    = "variant_match"
	AdjVariantMismatch = "variant_mismatch"
	AdjBrand           = "brand_mismatch"

	ProductTypePenalty    = 0.9
	VariantBonus          = 0.05
	VariantPenalty        = 0.2
	BrandPenalty          = 1.0
	multipackBasePenalty  = 0.5
	multipackExtraPenalty = 0.5
)

// ProductType is a coarse product category recognized by keyword.
type ProductType struct {
	Name     string
	Keywords []string
}

// ProductTypes are tried in order; the first type with a keyword present in
// the text wins, so compound dishes come before their ingredients and
// sauces before the pasta or rice they are sold for. Beans stay ahead of
// sauce because "beans in tomato sauce" is still beans.
var ProductTypes = []ProductType{
	{Name: "curry", Keywords: []string{"curry", "tikka", "korma", "masala", "jalfrezi", "dhal", "dal"}},
	{Name: "soup", Keywords: []string{"soup", "broth"}},
	{Name: "pizza", Keywords: []string{"pizza"}},
	{Name: "chickpeas", Keywords: []string{"chickpeas", "chick peas", "chickpea"}},
	{Name: "kidney beans", Keywords: []string{"kidney"}},
	{Name: "spaghetti hoops", Keywords: []string{"hoops", "spaghetti hoops"}},
	{Name: "beans", Keywords: []string{"beans", "beanz"}},
	{Name: "ketchup", Keywords: []string{"ketchup"}},
	{Name: "mayonnaise", Keywords: []string{"mayonnaise", "mayo"}},
	{Name: "sauce", Keywords: []string{"pasta sauce", "sauce", "gravy", "pesto"}},
	{Name: "pasta", Keywords: []string{"pasta", "penne", "fusilli", "spaghetti", "macaroni", "lasagne"}},
	{Name: "rice", Keywords: []string{"rice", "basmati"}},
	{Name: "cheese", Keywords: []string{"cheese", "cheddar", "mozzarella"}},
	{Name: "butter", Keywords: []string{"butter"}},
	{Name: "yogurt", Keywords: []string{"yogurt", "yoghurt"}},
	{Name: "milk", Keywords: []string{"milk"}},
	{Name: "bread", Keywords: []string{"bread", "loaf", "rolls", "baguette"}},
	{Name: "cereal", Keywords: []string{"cereal", "cornflakes", "muesli", "granola", "porridge", "oats"}},
	{Name: "crisps", Keywords: []string{"crisps"}},
	{Name: "biscuits", Keywords: []string{"biscuits", "cookies", "digestives"}},
	{Name: "chocolate", Keywords: []string{"chocolate"}},
	{Name: "juice", Keywords: []string{"juice", "squash"}},
	{Name: "tea", Keywords: []string{"tea", "teabags"}},
	{Name: "coffee", Keywords: []string{"coffee"}},
	{Name: "eggs", Keywords: []string{"eggs"}},
	{Name: "chicken", Keywords: []string{"chicken"}},
	{Name: "beef", Keywords: []string{"beef", "mince"}},
	{Name: "fish", Keywords: []string{"tuna", "salmon", "cod", "fish", "sardines", "mackerel"}},
}

// Variant is a marker that distinguishes otherwise identical products.
type Variant struct {
	Name string
	re   *regexp.Regexp
}

func variant(name, pattern string) Variant {
	return Variant{Name: name, re: regexp.MustCompile(`\b(?:` + pattern + `)\b`)}
}

// Variants lists the recognized variant markers.
var Variants = []Variant{
	variant("reduced sugar", `reduced (?:salt (?:and )?)?sugar|less sugar`),
	variant("reduced salt", `reduced (?:sugar (?:and )?)?salt|less salt|low salt`),
	variant("no added sugar", `no added sugar`),
	variant("low fat", `low fat|reduced fat|fat free`),
	variant("sugar free", `sugar free|zero sugar`),
	variant("diet", `diet`),
	variant("light", `light|lite`),
	variant("gluten free", `gluten free`),
	variant("organic", `organic`),
}

// ClassifyProductType returns the first product type whose keyword appears in
// normalized text, or "" when none does.
func ClassifyProductType(normalized string) string {
	padded := " " + normalized + " "
	for _, pt := range ProductTypes {
		for _, kw := range pt.Keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return pt.Name
			}
		}
	}
	return ""
}

// Adjustments computes the ordered penalties and bonuses for a pair.
func Adjustments(q, c *domain.Profile) []domain.Adjustment {
	var out []domain.Adjustment

	if a, ok := productTypeAdjustment(q, c); ok {
		out = append(out, a)
	}
	if a, ok := multipackAdjustment(&q.Attributes, &c.Attributes); ok {
		out = append(out, a)
	}
	out = append(out, variantAdjustments(q.Normalized, c.Normalized)...)
	if a, ok := brandAdjustment(&q.Attributes, &c.Attributes); ok {
		out = append(out, a)
	}

	return out
}

func productTypeAdjustment(q, c *domain.Profile) (domain.Adjustment, bool) {
	qt := ClassifyProductType(q.Normalized)
	ct := ClassifyProductType(c.Normalized)
	if qt == "" || ct == "" || qt == ct {
		return domain.Adjustment{}, false
	}
	return domain.Adjustment{
		Name:   AdjProductType,
		Detail: qt + " vs " + ct,
		Value:  -ProductTypePenalty,
	}, true
}

// multipackAdjustment penalizes a pack quantity disagreement. The penalty
// grows with the relative difference and is at least 0.5.
func multipackAdjustment(q, c *domain.Attributes) (domain.Adjustment, bool) {
	qa := max(q.PackQuantity, 1)
	ca := max(c.PackQuantity, 1)

	if qa == ca && q.IsMultipack() == c.IsMultipack() {
		return domain.Adjustment{}, false
	}

	ratio := math.Abs(float64(qa-ca)) / float64(max(qa, ca))
	return domain.Adjustment{
		Name:   AdjMultipack,
		Detail: fmt.Sprintf("%s vs %s", packLabel(q), packLabel(c)),
		Value:  -(multipackBasePenalty + multipackExtraPenalty*ratio),
	}, true
}

func packLabel(a *domain.Attributes) string {
	if a.PackQuantity <= 1 && a.Multipack {
		return "multipack"
	}
	return fmt.Sprintf("%d", max(a.PackQuantity, 1))
}

func variantAdjustments(q, c string) []domain.Adjustment {
	var out []domain.Adjustment
	for _, v := range Variants {
		inQ := v.re.MatchString(q)
		inC := v.re.MatchString(c)
		switch {
		case inQ && inC:
			out = append(out, domain.Adjustment{Name: AdjVariantMatch, Detail: v.Name, Value: VariantBonus})
		case inQ != inC:
			out = append(out, domain.Adjustment{Name: AdjVariantMismatch, Detail: v.Name, Value: -VariantPenalty})
		}
	}
	return out
}

func brandAdjustment(q, c *domain.Attributes) (domain.Adjustment, bool) {
	if !q.BrandKnown() || !c.BrandKnown() || q.Brand == c.Brand {
		return domain.Adjustment{}, false
	}
	return domain.Adjustment{
		Name:   AdjBrand,
		Detail: q.Brand + " vs " + c.Brand,
		Value:  -BrandPenalty,
	}, true
}
