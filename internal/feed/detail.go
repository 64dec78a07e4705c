package feed

import (
	"strings"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
	"github.com/golgrax/bayanihan-alerts/internal/xmldoc"
)

// ParseDetail converts a raw CAP record into an AlertDetail. Envelope
// fields are read unconditionally; a missing field is an empty string,
// never an error. Only the first <info> block is read; CAP permits one per
// language and PAGASA publishes a single English block. A record with no
// <info> at all is valid and yields a zero-valued Info.
func ParseDetail(data []byte) (domain.AlertDetail, error) {
	root, err := xmldoc.Parse(data)
	if err != nil {
		return domain.AlertDetail{}, err
	}

	detail := domain.AlertDetail{
		Identifier: firstChildText(root, "identifier"),
		Sender:     firstChildText(root, "sender"),
		Sent:       firstChildText(root, "sent"),
		Status:     firstChildText(root, "status"),
	}

	if info := root.Find("info"); info != nil {
		detail.Info = parseInfo(info)
	}
	return detail, nil
}

func parseInfo(info *xmldoc.Element) domain.AlertInfo {
	parsed := domain.AlertInfo{
		Category:     firstChildText(info, "category"),
		Event:        firstChildText(info, "event"),
		ResponseType: firstChildText(info, "responseType"),
		Urgency:      firstChildText(info, "urgency"),
		Severity:     firstChildText(info, "severity"),
		Certainty:    firstChildText(info, "certainty"),
		Expires:      firstChildText(info, "expires"),
		SenderName:   firstChildText(info, "senderName"),
		Headline:     firstChildText(info, "headline"),
		Description:  firstChildText(info, "description"),
		Instruction:  firstChildText(info, "instruction"),
		Web:          firstChildText(info, "web"),
		Contact:      firstChildText(info, "contact"),
	}

	for _, area := range info.ChildElements("area") {
		parsed.Areas = append(parsed.Areas, parseArea(area))
	}
	return parsed
}

func parseArea(area *xmldoc.Element) domain.AreaInfo {
	parsed := domain.AreaInfo{
		AreaDesc: firstChildText(area, "areaDesc"),
	}
	// Polygon text is trimmed but never parsed into coordinates here;
	// numeric conversion belongs to the geo package.
	for _, polygon := range area.ChildElements("polygon") {
		parsed.Polygons = append(parsed.Polygons, strings.TrimSpace(polygon.Text))
	}
	for _, geocode := range area.ChildElements("geocode") {
		parsed.Geocodes = append(parsed.Geocodes, domain.Geocode{
			ValueName: firstChildText(geocode, "valueName"),
			Value:     firstChildText(geocode, "value"),
		})
	}
	return parsed
}
