package dataprocessing

import (
	"strings"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// BodyTypeRules classify a model name into a body type. Order matters: a
// "sports wagon" is a Coupe because the coupe rule is checked first.
var BodyTypeRules = RuleSet{
	{Label: string(domain.BodyTypeSUV), Fragments: []string{"suv", "x1", "x3", "x5", "x7"}},
	{Label: string(domain.BodyTypeSedan), Fragments: []string{"sedan", "saloon"}},
	{Label: string(domain.BodyTypeHatchback), Fragments: []string{"hatchback", "hb"}},
	{Label: string(domain.BodyTypeCoupe), Fragments: []string{"coupe", "sports"}},
	{Label: string(domain.BodyTypeConvertible), Fragments: []string{"convertible", "cabriolet", "roadster"}},
	{Label: string(domain.BodyTypeWagon), Fragments: []string{"wagon", "estate", "touring"}},
	{Label: string(domain.BodyTypeVan), Fragments: []string{"van", "mpv", "minivan"}},
	{Label: string(domain.BodyTypePickup), Fragments: []string{"pickup", "truck"}},
}

// ClassifyBodyType derives a body type from a model name.
func ClassifyBodyType(modelName string) domain.BodyType {
	if label, ok := BodyTypeRules.Match(strings.ToLower(modelName)); ok {
		return domain.BodyType(label)
	}
	return domain.BodyTypeOther
}

// ClassifyAll returns the body type of every car, index-aligned with cars.
func ClassifyAll(cars []domain.Car) []domain.BodyType {
	out := make([]domain.BodyType, len(cars))
	for i := range cars {
		out[i] = ClassifyBodyType(cars[i].ModelName)
	}
	return out
}
