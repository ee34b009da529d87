package util

import "strings"

// NormalizeDistrict matches the casing convention the Contract table
// stores districts in: first letter upper, rest lower ("Baxter").
func NormalizeDistrict(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeCounty matches the all-caps convention counties are stored
// in ("MORRISON").
func NormalizeCounty(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
