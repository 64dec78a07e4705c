package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	updated := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	alert := domain.AlertSummary{
		ID:        "urn:alert:1",
		Title:     "Heavy Rainfall Warning #3 for Region 4-A",
		Updated:   updated,
		Severity:  domain.SeveritySevere,
		Region:    "Region 4-A",
		AlertType: "Rainfall Warning",
	}

	msg, err := serializeToMessage(alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("urn:alert:1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"severity":"severe"`)
	assert.Contains(t, string(msg.Value), `"region":"Region 4-A"`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "severity", msg.Headers[0].Key)
	assert.Equal(t, []byte("severe"), msg.Headers[0].Value)
	assert.Equal(t, "region", msg.Headers[1].Key)
	assert.Equal(t, []byte("Region 4-A"), msg.Headers[1].Value)
	assert.Equal(t, "updated", msg.Headers[2].Key)
	assert.Equal(t, []byte(updated.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessageKeysByID(t *testing.T) {
	first, err := serializeToMessage(domain.AlertSummary{ID: "urn:alert:9"})
	require.NoError(t, err)
	second, err := serializeToMessage(domain.AlertSummary{ID: "urn:alert:9", Title: "reissued"})
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key)
}

func TestPublishAlertsEmptySliceIsNoop(t *testing.T) {
	// No broker is reachable in unit tests; an empty batch must return
	// before any network use.
	w := &Writer{writer: &kafkago.Writer{Addr: kafkago.TCP("127.0.0.1:1")}}
	assert.NoError(t, w.PublishAlerts(t.Context(), nil))
}
