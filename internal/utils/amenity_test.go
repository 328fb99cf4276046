package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmenity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"WiFi", "WiFi"},
		{"wifi", "WiFi"},
		{"  Wi-Fi ", "WiFi"},
		{"24hr security", "24/7 Security"},
		{"swimming   pool", "Swimming Pool"},
		{"Rooftop Terrace", "Rooftop Terrace"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAmenity(tt.input))
		})
	}
}

func TestNormalizeAmenitiesDeduplicates(t *testing.T) {
	got := NormalizeAmenities([]string{"wifi", "Gym", "WiFi", "", "gymnasium", "Garden"})
	assert.Equal(t, []string{"WiFi", "Gym", "Garden"}, got)
}

func TestSplitList(t *testing.T) {
	got := SplitList([]string{"WiFi, Gym", "", "Parking,,"})
	assert.Equal(t, []string{"WiFi", "Gym", "Parking"}, got)
	assert.Nil(t, SplitList(nil))
}
