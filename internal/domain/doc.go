// Package domain models PAGASA public weather alerts.
//
// # Data Source
//
// Alerts originate from the PAGASA public alert feed at
// https://publicalert.pagasa.dost.gov.ph/feeds/, an ATOM document listing
// the currently active advisories. Each entry links to a full CAP (Common
// Alerting Protocol) record with envelope metadata, one or more <info>
// blocks, and affected-area geometries.
//
// # Title Conventions
//
// PAGASA entry titles are free text, but follow recognizable patterns that
// the extraction heuristics rely on:
//
//	Severity keywords:
//	  The CAP severity words ("extreme", "severe", "moderate", "minor")
//	  sometimes appear verbatim. When they do not, the bulletin kind implies
//	  a level: warnings are severe, advisories moderate, watches minor.
//	  Unrecognized titles default to moderate.
//
//	Region references:
//	  Administrative regions appear either as acronyms (NCR, CAR, BARMM),
//	  as numbered designations ("Region 3", "Region 4-A"), or by name
//	  ("Central Luzon", "CALABARZON", "Bicol"). CAR and BARMM each have a
//	  spelled-out variant ("Cordillera", "Bangsamoro"). Titles with no
//	  recognizable region map to the "Unknown Region" sentinel.
//
//	Alert kinds:
//	  A fixed set of bulletin phrases ("flood advisory", "tropical cyclone",
//	  "rainfall warning", "thunderstorm advisory", "wind warning",
//	  "storm surge warning") classifies the alert. Anything else is a
//	  generic "Weather Advisory".
//
// # CAP Detail Records
//
// A CAP record carries an <alert> envelope (identifier, sender, sent,
// status) and optional <info> blocks. CAP permits one <info> per language;
// this system reads only the first, as PAGASA publishes a single English
// block. Area polygons are kept as raw whitespace-separated "lat,lon"
// ring strings; numeric conversion belongs to the geo package, not the
// parsers.
package domain
