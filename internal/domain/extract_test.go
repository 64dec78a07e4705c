package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeverity(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected Severity
	}{
		{"literal extreme", "Extreme weather conditions over Luzon", SeverityExtreme},
		{"literal severe", "Severe thunderstorms expected", SeveritySevere},
		{"literal moderate", "Moderate rainfall over Visayas", SeverityModerate},
		{"literal minor", "Minor flooding possible", SeverityMinor},
		{"extreme beats severe", "Extreme to Severe conditions", SeverityExtreme},
		{"severe beats minor", "Severe weather, minor flooding", SeveritySevere},
		{"warning fallback", "Rainfall Warning #3 for Metro Manila", SeveritySevere},
		{"advisory fallback", "Flood Advisory for Pampanga", SeverityModerate},
		{"watch fallback", "Thunderstorm Watch over NCR", SeverityMinor},
		{"literal beats fallback", "Minor Flood Warning", SeverityMinor},
		{"default", "Routine Update", SeverityModerate},
		{"empty title", "", SeverityModerate},
		{"case insensitive", "EXTREME HEAT INDEX", SeverityExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSeverity(tt.title))
		})
	}
}

func TestExtractSeverity_Deterministic(t *testing.T) {
	title := "Severe Thunderstorm Warning for Region 3"
	first := ExtractSeverity(title)
	for range 10 {
		assert.Equal(t, first, ExtractSeverity(title))
	}
}

func TestExtractRegion(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"numbered region capture", "Flood Advisory for Region 4-A", "Region 4-A"},
		{"numbered region plain", "Rainfall Warning over Region 3", "Region 3"},
		{"two digit region", "Thunderstorm Advisory for Region 12", "Region 12"},
		{"NCR acronym", "Heavy Rainfall Warning for NCR", "NCR"},
		{"metro manila variant", "Flood watch over Metro Manila", "NCR"},
		{"CAR acronym", "Thunderstorm Advisory for CAR", "CAR"},
		{"cordillera variant", "Landslide watch over the Cordillera", "CAR"},
		{"BARMM acronym", "Flood Advisory for BARMM", "BARMM"},
		{"bangsamoro variant", "Rainfall Warning for Bangsamoro areas", "BARMM"},
		{"named ilocos", "Wind Warning for Ilocos provinces", "Region 1"},
		{"named calabarzon", "Flood Advisory for CALABARZON", "Region 4-A"},
		{"named bicol", "Tropical Cyclone Warning for Bicol", "Region 5"},
		{"named caraga", "Storm Surge Warning for Caraga coast", "Region 13"},
		{"default", "Routine Update", UnknownRegion},
		{"empty title", "", UnknownRegion},
		{"car substring not matched", "Take care during heavy rain", UnknownRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractRegion(tt.title))
		})
	}
}

func TestExtractAlertType(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"flood advisory", "Flood Advisory #2 for Cagayan Valley", "Flood Advisory"},
		{"tropical cyclone", "Tropical Cyclone Bulletin: Typhoon Pepito", "Tropical Cyclone"},
		{"rainfall warning", "Heavy Rainfall Warning for NCR", "Rainfall Warning"},
		{"thunderstorm advisory", "Thunderstorm Advisory over Region 7", "Thunderstorm Advisory"},
		{"wind warning", "Strong Wind Warning for fishing boats", "Wind Warning"},
		{"storm surge warning", "Storm Surge Warning for Eastern Samar", "Storm Surge Warning"},
		{"case insensitive", "FLOOD ADVISORY for Pampanga", "Flood Advisory"},
		{"default", "Routine Update", DefaultAlertType},
		{"empty title", "", DefaultAlertType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractAlertType(tt.title))
		})
	}
}
