// Command capcheck validates a saved ATOM feed file and its CAP detail
// files against the normalization rules: parseability, required fields,
// title derivations, and polygon ring geometry. It is used to sanity-check
// fixtures before pointing the service at them.
//
// Usage:
//
//	go run ./cmd/capcheck -feed data/mock/feed.xml -cap-dir data/mock
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/feed"
	"github.com/golgrax/bayanihan-alerts/internal/geo"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	feedPath := flag.String("feed", "", "path to an ATOM feed XML file")
	capDir := flag.String("cap-dir", "", "directory containing CAP XML files (optional)")
	flag.Parse()

	if *feedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*feedPath, *capDir); code != 0 {
		os.Exit(code)
	}
}

func run(feedPath, capDir string) int {
	fmt.Println("=== Alert Feed Validation ===")
	fmt.Println()

	data, err := os.ReadFile(feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read feed: %v\n", err)
		return 1
	}
	result, err := feed.ParseFeed(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse feed: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateEntries(result),
		validateDerivations(result),
	}
	if capDir != "" {
		phases = append(phases, validateCAPFiles(capDir))
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Feed: %q, %d entries\n", result.Title, len(result.Entries))
	stats := domain.Summarize(result.Entries)
	fmt.Printf("By severity: %v\n", stats.BySeverity)
	fmt.Printf("By region:   %v\n", stats.ByRegion)
	fmt.Printf("By type:     %v\n", stats.ByType)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateEntries checks required fields on every entry.
func validateEntries(result domain.FeedResult) *phase {
	p := &phase{name: "Phase 1: Entry fields"}

	if result.Title == "" {
		p.errorf("feed title is empty")
	}
	if len(result.Entries) == 0 {
		p.errorf("feed has no entries")
	}

	seen := map[string]int{}
	for i, e := range result.Entries {
		if e.ID == "" {
			p.errorf("entry %d: missing id", i)
		} else if prev, dup := seen[e.ID]; dup {
			p.errorf("entry %d: duplicate id %q (first at entry %d)", i, e.ID, prev)
		} else {
			seen[e.ID] = i
		}
		if e.Title == "" {
			p.errorf("entry %d: missing title", i)
		}
		if e.Updated.IsZero() {
			p.errorf("entry %d: missing or unparseable updated timestamp", i)
		}
	}
	return p
}

// validateDerivations checks that derived fields are populated and flags
// entries that fell through to defaults, which usually means a new title
// format upstream.
func validateDerivations(result domain.FeedResult) *phase {
	p := &phase{name: "Phase 2: Title derivations"}

	for i, e := range result.Entries {
		if e.Severity == "" || e.Region == "" || e.AlertType == "" {
			p.errorf("entry %d (%q): empty derived field", i, e.Title)
		}
		if e.Region == domain.UnknownRegion {
			fmt.Printf("  Note: entry %d (%q) has no recognizable region\n", i, e.Title)
		}
	}
	return p
}

// validateCAPFiles parses every *.xml CAP file in dir and checks its
// polygons form valid rings.
func validateCAPFiles(dir string) *phase {
	p := &phase{name: "Phase 3: CAP details"}

	paths, err := filepath.Glob(filepath.Join(dir, "cap-*.xml"))
	if err != nil || len(paths) == 0 {
		p.errorf("no cap-*.xml files in %s", dir)
		return p
	}

	for _, path := range paths {
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			p.errorf("%s: read: %v", name, err)
			continue
		}
		detail, err := feed.ParseDetail(data)
		if err != nil {
			p.errorf("%s: parse: %v", name, err)
			continue
		}
		if detail.Identifier == "" {
			p.errorf("%s: missing identifier", name)
		}
		for ai, area := range detail.Info.Areas {
			for pi, polygon := range area.Polygons {
				ring, err := geo.ParseRing(polygon)
				if err != nil {
					p.errorf("%s: area %d polygon %d: %v", name, ai, pi, err)
					continue
				}
				if len(ring) < 3 {
					p.errorf("%s: area %d polygon %d: only %d points", name, ai, pi, len(ring))
				}
			}
		}
	}
	return p
}
