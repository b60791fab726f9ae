package timepal

import "strings"

// Format renders v using only the zone baked into p. Without one, absolute
// values have no calendar fields and fail with ErrFieldUnavailable.
func (p *Pattern) Format(v Temporal) (string, error) {
	return p.format(v, p.zone)
}

func (p *Pattern) format(v Temporal, zone *ZoneOffset) (string, error) {
	if v == nil || v.IsZero() {
		return "", nullInput("temporal value")
	}
	fs := v.fields(zone)
	var b strings.Builder
	for _, e := range p.elems {
		if err := e.print(&b, fs); err != nil {
			return "", &FormatError{Op: "format", Pattern: p.text, Err: err}
		}
	}
	return b.String(), nil
}
