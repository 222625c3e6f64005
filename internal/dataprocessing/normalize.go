package dataprocessing

import (
	"strings"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Rule maps a value to a canonical label when any of its fragments occurs in
// the lower-cased input. Rules are evaluated in order and the first match wins.
type Rule struct {
	Label     string
	Fragments []string
}

// Matches reports whether the lower-cased value contains any fragment.
func (r Rule) Matches(lower string) bool {
	for _, f := range r.Fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered list of rules.
type RuleSet []Rule

// Match returns the label of the first matching rule.
func (rs RuleSet) Match(lower string) (string, bool) {
	for _, r := range rs {
		if r.Matches(lower) {
			return r.Label, true
		}
	}
	return "", false
}

// FuelRules are the fuel type rules. The last fragment is a misspelling that
// occurs in the source data.
var FuelRules = RuleSet{
	{Label: "Petrol", Fragments: []string{"petrol", "gasoline"}},
	{Label: "Diesel", Fragments: []string{"diesel"}},
	{Label: "Electric", Fragments: []string{"electric"}},
	{Label: "Hybrid", Fragments: []string{"hybrid"}},
	{Label: "Hydrogen", Fragments: []string{"hydrogen"}},
	{Label: "CNG", Fragments: []string{"cng"}},
	{Label: "Hybrid", Fragments: []string{"plug in hyrbrid"}},
}

// EngineRules are the engine layout rules.
var EngineRules = RuleSet{
	{Label: "V8", Fragments: []string{"v8"}},
	{Label: "V6", Fragments: []string{"v6"}},
	{Label: "V10", Fragments: []string{"v10"}},
	{Label: "V12", Fragments: []string{"v12"}},
	{Label: "I4", Fragments: []string{"i4", "inline-4"}},
	{Label: "I3", Fragments: []string{"i3", "inline-3"}},
	{Label: "I6", Fragments: []string{"i6", "inline-6"}},
	{Label: "Electric Motor", Fragments: []string{"electric motor"}},
}

// StandardizeFuelType maps a raw fuel description to its canonical label.
// Empty input is "Unknown"; unmatched input is returned unchanged.
func StandardizeFuelType(fuel string) string {
	return standardize(fuel, FuelRules)
}

// StandardizeEngineType maps a raw engine description to its canonical label.
func StandardizeEngineType(engine string) string {
	return standardize(engine, EngineRules)
}

func standardize(value string, rules RuleSet) string {
	if value == "" {
		return domain.UnknownValue
	}
	if label, ok := rules.Match(strings.ToLower(strings.TrimSpace(value))); ok {
		return label
	}
	return value
}
