// Command genfeed writes a sample PAGASA-style ATOM feed plus matching CAP
// detail files for local development. The titles exercise the derivation
// rules, so a service pointed at the output shows realistic severities,
// regions, and alert types.
//
// Usage:
//
//	go run ./cmd/genfeed -out data/mock
package main

import (
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

var baseTime = time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC)

type entryDef struct {
	title string
	slug  string
	event string
}

var entryDefs = []entryDef{
	{title: "Heavy Rainfall Warning #3 for Region 4-A issued at 5:00 AM", slug: "rainfall-r4a", event: "Heavy Rainfall"},
	{title: "Flood Advisory for Metro Manila", slug: "flood-ncr", event: "Flooding"},
	{title: "Severe Thunderstorm Warning for Central Luzon", slug: "thunderstorm-r3", event: "Thunderstorm"},
	{title: "Tropical Cyclone Extreme Wind Signal for Bicol", slug: "cyclone-r5", event: "Tropical Cyclone"},
	{title: "General Flood Advisory for the Cordillera Administrative Region", slug: "flood-car", event: "Flooding"},
	{title: "Weather Update for Caraga", slug: "update-r13", event: "Weather Update"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "output directory for feed.xml and CAP files")
	baseURL := flag.String("base-url", "http://localhost:8099", "base URL used in entry links")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	var feed bytes.Buffer
	feed.WriteString(xml.Header)
	feed.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	writeElem(&feed, 1, "id", *baseURL+"/feeds/")
	writeElem(&feed, 1, "title", "PAGASA Public Alerts")
	writeElem(&feed, 1, "updated", baseTime.Format(time.RFC3339))

	for i, def := range entryDefs {
		updated := baseTime.Add(-time.Duration(i) * 30 * time.Minute)
		capName := fmt.Sprintf("cap-%s.xml", def.slug)

		feed.WriteString("  <entry>\n")
		writeElem(&feed, 2, "id", "urn:uuid:"+uuid.NewString())
		writeElem(&feed, 2, "title", def.title)
		writeElem(&feed, 2, "updated", updated.Format(time.RFC3339))
		feed.WriteString("    <author><name>PAGASA-DOST</name></author>\n")
		fmt.Fprintf(&feed, "    <link href=%q/>\n", *baseURL+"/"+capName)
		feed.WriteString("  </entry>\n")

		if err := writeCAP(filepath.Join(*outDir, capName), def, updated); err != nil {
			return fmt.Errorf("writing %s: %w", capName, err)
		}
	}
	feed.WriteString("</feed>\n")

	feedPath := filepath.Join(*outDir, "feed.xml")
	if err := os.WriteFile(feedPath, feed.Bytes(), 0o600); err != nil {
		return err
	}
	log.Printf("wrote %s and %d CAP files", feedPath, len(entryDefs))

	printDerivations()
	return nil
}

func writeCAP(path string, def entryDef, sent time.Time) error {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">` + "\n")
	writeElem(&b, 1, "identifier", "PAGASA-"+def.slug)
	writeElem(&b, 1, "sender", "pagasa@dost.gov.ph")
	writeElem(&b, 1, "sent", sent.Format(time.RFC3339))
	writeElem(&b, 1, "status", "Actual")
	b.WriteString("  <info>\n")
	writeElem(&b, 2, "category", "Met")
	writeElem(&b, 2, "event", def.event)
	writeElem(&b, 2, "urgency", "Immediate")
	writeElem(&b, 2, "severity", "Severe")
	writeElem(&b, 2, "certainty", "Observed")
	writeElem(&b, 2, "senderName", "PAGASA-DOST")
	writeElem(&b, 2, "headline", def.title)
	b.WriteString("    <area>\n")
	writeElem(&b, 3, "areaDesc", domain.ExtractRegion(def.title))
	writeElem(&b, 3, "polygon", "14.1,121.0 14.1,121.5 14.5,121.5 14.5,121.0 14.1,121.0")
	b.WriteString("    </area>\n")
	b.WriteString("  </info>\n")
	b.WriteString("</alert>\n")
	return os.WriteFile(path, b.Bytes(), 0o600)
}

func writeElem(b *bytes.Buffer, depth int, name, text string) {
	for range depth {
		b.WriteString("  ")
	}
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(text)) //nolint:errcheck // bytes.Buffer writes cannot fail
	fmt.Fprintf(b, "<%s>%s</%s>\n", name, escaped.String(), name)
}

// printDerivations shows the derived fields for each generated title, useful
// when updating test assertions.
func printDerivations() {
	fmt.Println("\n=== Derived fields ===")
	for _, def := range entryDefs {
		fmt.Printf("  %-70s severity=%-8s region=%-28s type=%s\n",
			def.title,
			domain.ExtractSeverity(def.title),
			domain.ExtractRegion(def.title),
			domain.ExtractAlertType(def.title),
		)
	}
}
