package resolve

import "strings"

// Address holds the parts of a split freeform mailing address.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// SplitAddress splits a freeform "street, city, state zip" address on
// commas. The third segment is split on its first space into state and
// zip; the zip remainder is taken verbatim (hyphenated plus-four suffixes
// included, never validated). Fewer than three comma-separated segments
// yields all four fields empty: no partial extraction.
func SplitAddress(raw string) Address {
	segments := strings.Split(raw, ",")
	if len(segments) < 3 {
		return Address{}
	}

	street := strings.TrimSpace(segments[0])
	city := strings.TrimSpace(segments[1])

	stateZip := strings.TrimSpace(segments[2])
	state, zip, _ := strings.Cut(stateZip, " ")

	return Address{
		Street: street,
		City:   city,
		State:  state,
		Zip:    strings.TrimSpace(zip),
	}
}

// FormatProperty renders a property address in the "street, city, state
// zip" shape used for the repeated-facts lists.
func FormatProperty(street, city, state, zip string) string {
	return street + ", " + city + ", " + state + " " + zip
}
