package domain

import "slices"

// Symbol is a currency code with its human readable description.
type Symbol struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UniqueSymbols drops repeated codes, keeping the last occurrence of each code.
// The relative order of the surviving entries is preserved.
func UniqueSymbols(items []Symbol) []Symbol {
	last := make(map[string]int, len(items))
	for i, s := range items {
		last[s.Code] = i
	}
	out := make([]Symbol, 0, len(last))
	for i, s := range items {
		if last[s.Code] == i {
			out = append(out, s)
		}
	}
	return out
}

// SortByCode orders symbols by code in place.
func SortByCode(items []Symbol) {
	slices.SortFunc(items, func(a, b Symbol) int {
		switch {
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	})
}

// SortByDescription orders symbols by description, ascending and byte-wise,
// falling back to the code for equal descriptions.
func SortByDescription(items []Symbol) {
	slices.SortStableFunc(items, func(a, b Symbol) int {
		switch {
		case a.Description < b.Description:
			return -1
		case a.Description > b.Description:
			return 1
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	})
}
