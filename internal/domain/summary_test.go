package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	entries := []AlertSummary{
		{ID: "a", Severity: SeveritySevere, Region: "NCR", AlertType: "Rainfall Warning"},
		{ID: "b", Severity: SeveritySevere, Region: "Region 3", AlertType: "Flood Advisory"},
		{ID: "c", Severity: SeverityModerate, Region: "NCR", AlertType: "Flood Advisory"},
	}

	got := Summarize(entries)

	want := AlertStats{
		Total:      3,
		BySeverity: map[Severity]int{SeveritySevere: 2, SeverityModerate: 1},
		ByRegion:   map[string]int{"NCR": 2, "Region 3": 1},
		ByType:     map[string]int{"Rainfall Warning": 1, "Flood Advisory": 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, 0, got.Total)
	assert.Empty(t, got.BySeverity)
	assert.Empty(t, got.ByRegion)
	assert.Empty(t, got.ByType)
}
