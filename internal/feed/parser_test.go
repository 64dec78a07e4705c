package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <id>https://publicalert.pagasa.dost.gov.ph/feeds/</id>
  <title>PAGASA Public Alerts</title>
  <updated>2025-08-20T06:00:00Z</updated>
  <entry>
    <id>urn:pagasa:alert:A</id>
    <title>Heavy Rainfall Warning for Region 4-A</title>
    <updated>2025-08-20T05:45:00Z</updated>
    <author><name>PAGASA-DOST</name></author>
    <link href="https://publicalert.pagasa.dost.gov.ph/output/alert-a.xml" rel="alternate"/>
  </entry>
  <entry>
    <id>urn:pagasa:alert:B</id>
    <title>Flood Advisory for Metro Manila</title>
    <updated>2025-08-20T05:30:00Z</updated>
    <author><name>PAGASA-DOST</name></author>
  </entry>
  <entry>
    <id>urn:pagasa:alert:C</id>
    <title>Routine Update</title>
    <updated>2025-08-20T05:00:00Z</updated>
    <author><name>PAGASA-DOST</name></author>
    <link href="https://publicalert.pagasa.dost.gov.ph/output/alert-c.xml"/>
  </entry>
</feed>`

func TestParseFeed(t *testing.T) {
	result, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "https://publicalert.pagasa.dost.gov.ph/feeds/", result.ID)
	assert.Equal(t, "PAGASA Public Alerts", result.Title)
	assert.Equal(t, time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC), result.Updated)
	require.Len(t, result.Entries, 3)

	first := result.Entries[0]
	assert.Equal(t, "urn:pagasa:alert:A", first.ID)
	assert.Equal(t, "Heavy Rainfall Warning for Region 4-A", first.Title)
	assert.Equal(t, "PAGASA-DOST", first.Author)
	assert.Equal(t, "https://publicalert.pagasa.dost.gov.ph/output/alert-a.xml", first.Link)
	assert.Equal(t, domain.SeveritySevere, first.Severity)
	assert.Equal(t, "Region 4-A", first.Region)
	assert.Equal(t, "Rainfall Warning", first.AlertType)
}

func TestParseFeed_PreservesDocumentOrder(t *testing.T) {
	result, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"urn:pagasa:alert:A", "urn:pagasa:alert:B", "urn:pagasa:alert:C"}, ids)
}

func TestParseFeed_MissingLinkIsNotAnError(t *testing.T) {
	result, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	assert.Empty(t, result.Entries[1].Link)
}

func TestParseFeed_DerivedFieldDefaults(t *testing.T) {
	result, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	routine := result.Entries[2]
	assert.Equal(t, domain.SeverityModerate, routine.Severity)
	assert.Equal(t, domain.UnknownRegion, routine.Region)
	assert.Equal(t, domain.DefaultAlertType, routine.AlertType)
}

func TestParseFeed_EmptyFeed(t *testing.T) {
	result, err := ParseFeed([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"><title>PAGASA Public Alerts</title></feed>`))
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestParseFeed_Malformed(t *testing.T) {
	_, err := ParseFeed([]byte("<<not xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParseFeed_UnexpectedStructure(t *testing.T) {
	_, err := ParseFeed([]byte(`<html><body>maintenance page</body></html>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedStructure)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"rfc3339", "2025-08-20T06:00:00Z", time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)},
		{"rfc3339 with offset", "2025-08-20T14:00:00+08:00", time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTime(tt.input))
		})
	}
}
