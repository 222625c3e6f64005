package dataprocessing

import (
	"sort"
	"strings"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// UniqueBrands returns the sorted distinct company names.
func UniqueBrands(cars []domain.Car) []string {
	return uniqueSorted(cars, func(c domain.Car) string { return c.CompanyName })
}

// UniqueFuelTypes returns the sorted distinct fuel labels.
func UniqueFuelTypes(cars []domain.Car) []string {
	return uniqueSorted(cars, func(c domain.Car) string { return c.FuelType })
}

// UniqueBodyTypes returns the sorted distinct body types.
func UniqueBodyTypes(cars []domain.Car) []string {
	return uniqueSorted(cars, func(c domain.Car) string { return string(ClassifyBodyType(c.ModelName)) })
}

// Options collects the selectable filter values of a dataset.
func Options(cars []domain.Car) domain.FilterOptions {
	return domain.FilterOptions{
		Brands:    UniqueBrands(cars),
		FuelTypes: UniqueFuelTypes(cars),
		BodyTypes: UniqueBodyTypes(cars),
	}
}

// SearchBrands keeps the brands containing term, ignoring case. An empty
// term keeps everything.
func SearchBrands(brands []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		if term == "" || strings.Contains(strings.ToLower(b), term) {
			out = append(out, b)
		}
	}
	return out
}

func uniqueSorted(cars []domain.Car, key func(domain.Car) string) []string {
	seen := make(map[string]struct{}, len(cars))
	out := make([]string, 0)
	for _, c := range cars {
		k := key(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
