package domain

import "time"

// Severity is the four-level alert classification derived from titles.
type Severity string

const (
	SeverityExtreme  Severity = "extreme"
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// AlertSummary is one normalized feed entry. ID is the feed-assigned
// identifier, stable across refreshes. Severity, Region, and AlertType are
// derived from the raw title and never empty.
type AlertSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Updated   time.Time `json:"updated"`
	Author    string    `json:"author"`
	Link      string    `json:"link,omitempty"` // detail CAP record URL; empty when absent
	Severity  Severity  `json:"severity"`
	Region    string    `json:"region"`
	AlertType string    `json:"alertType"`
}

// FeedResult is the outcome of one feed parse. ID, Title, and Updated
// describe the feed resource itself, not an alert. Entries preserve
// document order; the feed is reverse-chronological upstream and no
// independent sort is applied. Stale marks data served from an expired
// cache entry after a failed refresh.
type FeedResult struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Updated time.Time      `json:"updated"`
	Entries []AlertSummary `json:"entries"`
	Stale   bool           `json:"stale,omitempty"`
}

// Geocode is one CAP valueName/value administrative code pair.
type Geocode struct {
	ValueName string `json:"valueName"`
	Value     string `json:"value"`
}

// AreaInfo describes one affected area. Polygons hold raw trimmed
// whitespace-separated "lat,lon" ring strings in document order; numeric
// parsing is deferred to the geo package.
type AreaInfo struct {
	AreaDesc string    `json:"areaDesc"`
	Polygons []string  `json:"polygons,omitempty"`
	Geocodes []Geocode `json:"geocodes,omitempty"`
}

// AlertInfo is the first <info> block of a CAP record. All fields are
// optional; absent elements are empty strings.
type AlertInfo struct {
	Category     string     `json:"category"`
	Event        string     `json:"event"`
	ResponseType string     `json:"responseType"`
	Urgency      string     `json:"urgency"`
	Severity     string     `json:"severity"`
	Certainty    string     `json:"certainty"`
	Expires      string     `json:"expires"`
	SenderName   string     `json:"senderName"`
	Headline     string     `json:"headline"`
	Description  string     `json:"description"`
	Instruction  string     `json:"instruction"`
	Web          string     `json:"web"`
	Contact      string     `json:"contact"`
	Areas        []AreaInfo `json:"areas,omitempty"`
}

// AlertDetail is a parsed CAP record. Status is free text in practice
// (Actual, Exercise, System, Test, Draft) and kept opaque. A record with no
// <info> block is valid; Info is then zero-valued.
type AlertDetail struct {
	Identifier string    `json:"identifier"`
	Sender     string    `json:"sender"`
	Sent       string    `json:"sent"`
	Status     string    `json:"status"`
	Info       AlertInfo `json:"info"`
	Stale      bool      `json:"stale,omitempty"`
}

// CacheStats is the cache introspection surface.
type CacheStats struct {
	Size int           `json:"size"`
	Keys []string      `json:"keys"`
	TTL  time.Duration `json:"ttl"`
}
