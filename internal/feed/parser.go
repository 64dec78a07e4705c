// Package feed turns the PAGASA ATOM feed and its linked CAP records into
// normalized alert values, and owns the fetch/cache/retry policy around
// them.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/xmldoc"
)

// ParseFeed converts a raw ATOM feed document into a FeedResult. Entry
// order follows document order end to end; the feed is already
// reverse-chronological upstream. Fails with domain.ErrMalformedDocument
// for unparseable input and domain.ErrUnexpectedStructure when the root is
// not an ATOM <feed>.
func ParseFeed(data []byte) (domain.FeedResult, error) {
	root, err := xmldoc.Parse(data)
	if err != nil {
		return domain.FeedResult{}, err
	}
	if root.Name != "feed" {
		return domain.FeedResult{}, fmt.Errorf("%w: root element <%s>", domain.ErrUnexpectedStructure, root.Name)
	}

	result := domain.FeedResult{
		ID:      firstChildText(root, "id"),
		Title:   firstChildText(root, "title"),
		Updated: parseTime(firstChildText(root, "updated")),
	}

	for _, entry := range root.ChildElements("entry") {
		result.Entries = append(result.Entries, parseEntry(entry))
	}
	return result, nil
}

func parseEntry(entry *xmldoc.Element) domain.AlertSummary {
	title := entry.FindText("title")

	summary := domain.AlertSummary{
		ID:        entry.FindText("id"),
		Title:     title,
		Updated:   parseTime(entry.FindText("updated")),
		Severity:  domain.ExtractSeverity(title),
		Region:    domain.ExtractRegion(title),
		AlertType: domain.ExtractAlertType(title),
	}

	// ATOM authors are usually <author><name>…</name>; fall back to the
	// element's own text for feeds that inline the name.
	if author := entry.Find("author"); author != nil {
		summary.Author = author.FindText("name")
		if summary.Author == "" {
			summary.Author = strings.TrimSpace(author.Text)
		}
	}

	// A missing link means the detail view degrades to summary-only; it is
	// not an error.
	if link := entry.Find("link"); link != nil {
		summary.Link = link.Attr("href")
	}
	return summary
}

// firstChildText returns the trimmed text of the first direct child with
// the given name. Scoped to direct children so feed-level fields never read
// from entries and envelope fields never read from <info>.
func firstChildText(el *xmldoc.Element, name string) string {
	children := el.ChildElements(name)
	if len(children) == 0 {
		return ""
	}
	return strings.TrimSpace(children[0].Text)
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
}

// parseTime tries the timestamp layouts seen in ATOM feeds, returning the
// zero time when none match.
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
