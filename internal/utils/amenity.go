package utils

import (
	"strings"
)

// amenityAliases maps the spellings landlords and students type onto
// the amenity names shown in the filter panel
var amenityAliases = map[string]string{
	"wifi":             "WiFi",
	"wi-fi":            "WiFi",
	"wi fi":            "WiFi",
	"internet":         "WiFi",
	"laundry":          "Laundry",
	"washing machine":  "Laundry",
	"security":         "24/7 Security",
	"24/7 security":    "24/7 Security",
	"24hr security":    "24/7 Security",
	"24-hour security": "24/7 Security",
	"study area":       "Study Area",
	"study room":       "Study Area",
	"parking":          "Parking",
	"car park":         "Parking",
	"gym":              "Gym",
	"gymnasium":        "Gym",
	"fitness":          "Gym",
	"pool":             "Swimming Pool",
	"swimming pool":    "Swimming Pool",
	"cafeteria":        "Cafeteria",
	"canteen":          "Cafeteria",
	"kitchen":          "Kitchen",
	"garden":           "Garden",
	"cctv":             "CCTV",
	"generator":        "Generator",
	"backup power":     "Generator",
}

// NormalizeAmenity returns the canonical name of an amenity.
// Unknown amenities are returned trimmed, with their casing kept.
func NormalizeAmenity(amenity string) string {
	trimmed := strings.Join(strings.Fields(amenity), " ")
	if canonical, ok := amenityAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeAmenities canonicalises a tag list, dropping blanks and
// duplicates while keeping first-seen order
func NormalizeAmenities(amenities []string) []string {
	out := make([]string, 0, len(amenities))
	seen := make(map[string]bool, len(amenities))
	for _, a := range amenities {
		n := NormalizeAmenity(a)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// SplitList splits comma separated values, the form query strings use
// for multi-select filters
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
