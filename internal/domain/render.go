package domain

import (
	"fmt"

	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

// ResolvePattern compiles caller-supplied pattern text or looks up a
// predefined name. Empty text yields nil, meaning the default pattern.
func ResolvePattern(text string) (*timepal.Pattern, error) {
	if text == "" {
		return nil, nil
	}
	if len(text) > MaxPatternLength {
		return nil, fmt.Errorf("%w: pattern longer than %d bytes", ErrInvalidInput, MaxPatternLength)
	}
	return timepal.LookupPattern(text)
}

// ResolveOffset parses caller-supplied offset text. Empty text yields nil,
// meaning the default offset.
func ResolveOffset(text string) (*timepal.ZoneOffset, error) {
	if text == "" {
		return nil, nil
	}
	z, err := timepal.ParseZoneOffset(text)
	if err != nil {
		return nil, err
	}
	return &z, nil
}

// Render formats v through f. A nil p means the default pattern and a nil
// offset means the default offset; an explicit offset wins over both the
// default and any zone baked into p.
func Render(f *timepal.Facade, p *timepal.Pattern, v timepal.Temporal, offset *timepal.ZoneOffset) (string, error) {
	switch {
	case offset != nil:
		if p == nil {
			p = f.Config().Pattern
		}
		return timepal.FormatIn(p, v, *offset)
	case p != nil:
		return f.FormatWith(p, v)
	default:
		return f.Format(v)
	}
}

// Now samples f's clock once and reports the reading rendered with p at
// offset, under the same defaulting rules as Render.
func Now(f *timepal.Facade, p *timepal.Pattern, offset *timepal.ZoneOffset) (protocol.NowResponse, error) {
	i := f.CurrentInstant()
	text, err := Render(f, p, i, offset)
	if err != nil {
		return protocol.NowResponse{}, err
	}
	instant, err := instantText.Format(i)
	if err != nil {
		return protocol.NowResponse{}, err
	}

	cfg := f.Config()
	if p == nil {
		p = cfg.Pattern
	}
	if offset == nil {
		offset = &cfg.Offset
	}
	return protocol.NowResponse{
		Text:        text,
		Instant:     instant,
		EpochMillis: i.UnixMilli(),
		Offset:      offset.String(),
		Pattern:     p.String(),
	}, nil
}

// Parse reads text with p into a value of the given kind. A nil p means
// the default pattern. Instants and wall clocks without an offset in the
// text resolve at the default offset.
func Parse(f *timepal.Facade, kind Representation, p *timepal.Pattern, text string) (timepal.Temporal, error) {
	if p == nil {
		p = f.Config().Pattern
	}
	switch kind {
	case RepresentationInstant:
		return f.ParseInstant(p, text)
	case RepresentationWallClock:
		return f.ParseWallClock(p, text)
	case RepresentationLocalDateTime:
		return timepal.ParseLocalDateTime(p, text)
	case RepresentationLocalDate:
		return timepal.ParseLocalDate(p, text)
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
}
