package sheet

import "strings"

// The sheet has a single memo column and a single title column, so location
// and the per-person price flag ride along as text markers. Nothing outside
// this file should know the marker syntax.
const (
	locationPrefix  = "[LOCATION:"
	locationSuffix  = "]"
	perPersonMarker = "[1인당]"
)

// EncodeBody packs a location and description into the memo column. The
// location is kept to one line. A description that would itself read as a
// marker gets an empty marker in front of it.
func EncodeBody(location, description string) string {
	location = strings.Join(strings.Fields(location), " ")
	description = strings.TrimSpace(description)
	if location == "" && !strings.HasPrefix(description, locationPrefix) {
		return description
	}
	return locationPrefix + " " + location + locationSuffix + "\n" + description
}

// DecodeBody splits a memo cell back into location and description. The
// marker ends at the last bracket of its line, so a location may contain
// brackets. Exactly one newline after the marker is removed.
func DecodeBody(memo string) (location, description string) {
	memo = strings.TrimLeft(memo, " \t\r\n")
	if !strings.HasPrefix(memo, locationPrefix) {
		return "", strings.TrimSpace(memo)
	}
	first, rest, multiline := strings.Cut(memo, "\n")
	line := strings.TrimRight(first, " \t\r")
	end := len(line) - len(locationSuffix)
	if !strings.HasSuffix(line, locationSuffix) {
		// Single-line legacy memo: "[LOCATION: x] text".
		end = strings.Index(line, locationSuffix)
		if end < 0 {
			return "", strings.TrimSpace(memo)
		}
		tail := line[end+len(locationSuffix):]
		if multiline {
			tail += "\n" + rest
		}
		rest = tail
	}
	location = strings.TrimSpace(line[len(locationPrefix):end])
	return location, strings.TrimSpace(rest)
}

// EncodeTitle applies the per-person marker to a title when needed.
func EncodeTitle(title string, kind PriceKind) string {
	title = strings.TrimSpace(title)
	if kind == PricePerPerson {
		return perPersonMarker + " " + title
	}
	return title
}

// HasPriceMarker reports whether a title typed by the user already starts
// with the per-person marker. Such a title cannot be stored as a total price.
func HasPriceMarker(title string) bool {
	return strings.HasPrefix(strings.TrimSpace(title), perPersonMarker)
}

// DecodeTitle strips the per-person marker once and reports the price kind.
func DecodeTitle(raw string) (string, PriceKind) {
	trimmed := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(trimmed, perPersonMarker); ok {
		return strings.TrimSpace(rest), PricePerPerson
	}
	return trimmed, PriceTotal
}

// Fields rebuilds the editable form fields from a cached post. The password
// is never cached, so it is left empty.
func (p Post) Fields() PostFields {
	return PostFields{
		Title:       p.Title,
		PriceKind:   p.PriceKind,
		Category:    p.Category,
		Price:       p.Price,
		Location:    p.Location,
		Description: p.Description,
	}
}
