package domain

import (
	"regexp"
	"strings"
)

// Sentinels returned when no pattern matches a title.
const (
	UnknownRegion    = "Unknown Region"
	DefaultAlertType = "Weather Advisory"
)

// severityKeywords is checked in priority order; the first substring match
// wins. The CAP severity words come first, then bulletin-kind fallbacks.
var severityKeywords = []struct {
	keyword  string
	severity Severity
}{
	{"extreme", SeverityExtreme},
	{"severe", SeveritySevere},
	{"moderate", SeverityModerate},
	{"minor", SeverityMinor},
	{"warning", SeveritySevere},
	{"advisory", SeverityModerate},
	{"watch", SeverityMinor},
}

// ExtractSeverity derives a severity level from a raw alert title.
// Total: unrecognized titles map to SeverityModerate.
func ExtractSeverity(title string) Severity {
	t := strings.ToLower(title)
	for _, entry := range severityKeywords {
		if strings.Contains(t, entry.keyword) {
			return entry.severity
		}
	}
	return SeverityModerate
}

// regionPatterns is tried in order; the first match wins. The template may
// reference one capture group ("Region $1" keeps hyphenated suffixes such
// as "4-A" intact). Acronyms and their spelled-out variants come first,
// then the numbered-region capture, then region names.
var regionPatterns = []struct {
	re       *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`(?i)\bNCR\b`), "NCR"},
	{regexp.MustCompile(`(?i)metro\s+manila`), "NCR"},
	{regexp.MustCompile(`(?i)\bCAR\b`), "CAR"},
	{regexp.MustCompile(`(?i)cordillera`), "CAR"},
	{regexp.MustCompile(`(?i)\bBARMM\b`), "BARMM"},
	{regexp.MustCompile(`(?i)bangsamoro`), "BARMM"},
	{regexp.MustCompile(`(?i)\bregion\s+(\d{1,2}(?:-[A-Za-z])?)`), "Region $1"},
	{regexp.MustCompile(`(?i)ilocos`), "Region 1"},
	{regexp.MustCompile(`(?i)cagayan\s+valley`), "Region 2"},
	{regexp.MustCompile(`(?i)central\s+luzon`), "Region 3"},
	{regexp.MustCompile(`(?i)calabarzon`), "Region 4-A"},
	{regexp.MustCompile(`(?i)mimaropa`), "Region 4-B"},
	{regexp.MustCompile(`(?i)bicol`), "Region 5"},
	{regexp.MustCompile(`(?i)western\s+visayas`), "Region 6"},
	{regexp.MustCompile(`(?i)central\s+visayas`), "Region 7"},
	{regexp.MustCompile(`(?i)eastern\s+visayas`), "Region 8"},
	{regexp.MustCompile(`(?i)zamboanga`), "Region 9"},
	{regexp.MustCompile(`(?i)northern\s+mindanao`), "Region 10"},
	{regexp.MustCompile(`(?i)davao`), "Region 11"},
	{regexp.MustCompile(`(?i)soccsksargen`), "Region 12"},
	{regexp.MustCompile(`(?i)caraga`), "Region 13"},
}

// ExtractRegion derives an administrative region from a raw alert title.
// Total: titles with no recognizable region map to UnknownRegion.
func ExtractRegion(title string) string {
	for _, p := range regionPatterns {
		if m := p.re.FindStringSubmatchIndex(title); m != nil {
			return string(p.re.ExpandString(nil, p.template, title, m))
		}
	}
	return UnknownRegion
}

// alertTypeKeywords is checked in order against the lower-cased title.
var alertTypeKeywords = []struct {
	keyword string
	label   string
}{
	{"flood advisory", "Flood Advisory"},
	{"tropical cyclone", "Tropical Cyclone"},
	{"rainfall warning", "Rainfall Warning"},
	{"thunderstorm advisory", "Thunderstorm Advisory"},
	{"wind warning", "Wind Warning"},
	{"storm surge warning", "Storm Surge Warning"},
}

// ExtractAlertType classifies a raw alert title into a bulletin kind.
// Total: unrecognized titles map to DefaultAlertType.
func ExtractAlertType(title string) string {
	t := strings.ToLower(title)
	for _, entry := range alertTypeKeywords {
		if strings.Contains(t, entry.keyword) {
			return entry.label
		}
	}
	return DefaultAlertType
}
