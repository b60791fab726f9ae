package timepal

import (
	"fmt"
	"strings"
)

// Pattern renders and parses time values as text. It is compiled once and
// immutable afterwards, so one Pattern may be shared by any number of
// goroutines.
//
// Pattern letters:
//
//	y, u    year; "yy" is the two-digit year in 2000-2099
//	M       month: M, MM numeric; MMM short name; MMMM full name; MMMMM initial
//	d       day of month (d, dd)
//	D       day of year (D, DD, DDD)
//	E       day of week: E-EEE short name; EEEE full name; EEEEE initial
//	a       AM/PM marker
//	H       hour of day 0-23 (H, HH)
//	k       clock hour of day 1-24
//	K       hour of AM/PM 0-11
//	h       clock hour of AM/PM 1-12
//	m       minute (m, mm)
//	s       second (s, ss)
//	S       fraction of second, truncated to the letter count (1-9)
//	n       nanosecond of second
//	X       offset, "Z" for zero: X +HH[mm], XX +HHmm, XXX +HH:mm
//	x       offset as X without the "Z" form
//	Z       offset +HHmm
//
// Text in single quotes is literal and '' is a quote. Square brackets
// enclose an optional section, printed only when every field it needs is
// available and skipped on parse when the text does not match. Any other
// letter, and the reserved characters '{', '}' and '#', are malformed.
type Pattern struct {
	text  string
	elems []element
	zone  *ZoneOffset
}

// CompilePattern compiles pattern text. Malformed text fails here rather than
// when the pattern is first used.
func CompilePattern(text string) (*Pattern, error) {
	elems, err := compile(text)
	if err != nil {
		return nil, &FormatError{Op: "compile", Pattern: text, Err: err}
	}
	return &Pattern{text: text, elems: elems}, nil
}

// MustCompile is CompilePattern that panics on error. Use it for patterns
// known at compile time.
func MustCompile(text string) *Pattern {
	p, err := CompilePattern(text)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern text.
func (p *Pattern) String() string { return p.text }

// WithZone returns a copy of p that renders absolute values at offset z.
func (p *Pattern) WithZone(z ZoneOffset) *Pattern {
	cp := *p
	cp.zone = &z
	return &cp
}

// Zone returns the offset baked into p, if any.
func (p *Pattern) Zone() (ZoneOffset, bool) {
	if p.zone == nil {
		return UTC, false
	}
	return *p.zone, true
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedPattern}, args...)...)
}

func compile(text string) ([]element, error) {
	stack := [][]element{nil}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			top := len(stack) - 1
			stack[top] = append(stack[top], &literalElem{s: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isLetter(c):
			n := 1
			for i+n < len(text) && text[i+n] == c {
				n++
			}
			e, err := letterElement(c, n)
			if err != nil {
				return nil, fmt.Errorf("%w at index %d", err, i)
			}
			flush()
			top := len(stack) - 1
			stack[top] = append(stack[top], e)
			i += n
		case c == '\'':
			if i+1 < len(text) && text[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			j := i + 1
			for {
				if j >= len(text) {
					return nil, malformed("unclosed quote at index %d", i)
				}
				if text[j] == '\'' {
					if j+1 < len(text) && text[j+1] == '\'' {
						lit.WriteByte('\'')
						j += 2
						continue
					}
					break
				}
				lit.WriteByte(text[j])
				j++
			}
			i = j + 1
		case c == '[':
			flush()
			stack = append(stack, nil)
			i++
		case c == ']':
			if len(stack) == 1 {
				return nil, malformed("unmatched ']' at index %d", i)
			}
			flush()
			inner := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top := len(stack) - 1
			stack[top] = append(stack[top], &optionalElem{elems: inner})
			i++
		case c == '{' || c == '}' || c == '#':
			return nil, malformed("reserved character %q at index %d", c, i)
		default:
			lit.WriteByte(c)
			i++
		}
	}
	if len(stack) > 1 {
		return nil, malformed("unclosed '['")
	}
	flush()

	elems := stack[0]
	linkAdjacent(elems)
	return elems, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func letterElement(c byte, n int) (element, error) {
	tooMany := func() error { return malformed("too many pattern letters %q", strings.Repeat(string(c), n)) }

	switch c {
	case 'y', 'u':
		switch {
		case n == 2:
			return &numberElem{f: fieldYear, min: 2, max: 2, kind: numTwoDigitYear}, nil
		case n >= 4:
			return &numberElem{f: fieldYear, min: n, max: maxYearDigits, sign: signExceedsPad}, nil
		default:
			return &numberElem{f: fieldYear, min: n, max: maxYearDigits, sign: signNormal}, nil
		}
	case 'M':
		switch n {
		case 1, 2:
			return &numberElem{f: fieldMonth, min: n, max: 2}, nil
		case 3:
			return &textElem{f: fieldMonth, style: textShort}, nil
		case 4:
			return &textElem{f: fieldMonth, style: textFull}, nil
		case 5:
			return &textElem{f: fieldMonth, style: textNarrow}, nil
		}
		return nil, tooMany()
	case 'E':
		switch {
		case n <= 3:
			return &textElem{f: fieldWeekday, style: textShort}, nil
		case n == 4:
			return &textElem{f: fieldWeekday, style: textFull}, nil
		case n == 5:
			return &textElem{f: fieldWeekday, style: textNarrow}, nil
		}
		return nil, tooMany()
	case 'a':
		if n > 1 {
			return nil, tooMany()
		}
		return &textElem{f: fieldAMPM, style: textShort}, nil
	case 'd', 'H', 'm', 's', 'k', 'K', 'h':
		if n > 2 {
			return nil, tooMany()
		}
		e := &numberElem{min: n, max: 2}
		switch c {
		case 'd':
			e.f = fieldDay
		case 'H':
			e.f = fieldHour
		case 'm':
			e.f = fieldMinute
		case 's':
			e.f = fieldSecond
		case 'k':
			e.f, e.kind = fieldHour, numClockHour24
		case 'K':
			e.f = fieldHourOfAMPM
		case 'h':
			e.f, e.kind = fieldHourOfAMPM, numClockHour12
		}
		return e, nil
	case 'D':
		if n > 3 {
			return nil, tooMany()
		}
		return &numberElem{f: fieldDayOfYear, min: n, max: 3}, nil
	case 'S':
		if n > 9 {
			return nil, tooMany()
		}
		return &fractionElem{min: n, max: n}, nil
	case 'n':
		if n > 9 {
			return nil, tooMany()
		}
		return &numberElem{f: fieldNano, min: n, max: 9}, nil
	case 'X', 'x', 'Z':
		if n > 3 {
			return nil, tooMany()
		}
		return &offsetElem{letter: c, width: n}, nil
	}
	return nil, malformed("unknown pattern letter %q", c)
}

// linkAdjacent reserves digits for fixed-width numbers that directly follow
// a variable-width one, so "yyyyMMdd" parses "20240305".
func linkAdjacent(elems []element) {
	for i, e := range elems {
		if opt, ok := e.(*optionalElem); ok {
			linkAdjacent(opt.elems)
			continue
		}
		num, ok := e.(*numberElem)
		if !ok || num.min == num.max {
			continue
		}
		reserve := 0
		for _, next := range elems[i+1:] {
			w, fixed := fixedDigits(next)
			if !fixed {
				break
			}
			reserve += w
		}
		num.reserve = reserve
	}
}

func fixedDigits(e element) (int, bool) {
	switch e := e.(type) {
	case *numberElem:
		if e.min == e.max {
			return e.min, true
		}
	case *fractionElem:
		if !e.point && e.min == e.max {
			return e.min, true
		}
	}
	return 0, false
}

const maxYearDigits = 10

// Predefined patterns. They carry no zone; the Facade supplies one.
var (
	// ISOLocalDateTime renders 2024-03-05T10:15:30 with the fraction of
	// second appended only when it is non-zero, trailing zeros trimmed.
	ISOLocalDateTime = &Pattern{text: "ISO_LOCAL_DATE_TIME", elems: isoLocalDateTime()}

	// ISOLocalDate renders 2024-03-05.
	ISOLocalDate = &Pattern{text: "ISO_LOCAL_DATE", elems: isoLocalDate()}

	// ISOLocalTime renders 10:15:30 with an optional fraction.
	ISOLocalTime = &Pattern{text: "ISO_LOCAL_TIME", elems: isoLocalTime()}

	// ISOOffsetDateTime renders 2024-03-05T10:15:30+01:00.
	ISOOffsetDateTime = &Pattern{text: "ISO_OFFSET_DATE_TIME", elems: append(isoLocalDateTime(),
		&offsetElem{letter: 'X', width: 3})}

	// ISOInstant renders 2024-03-05T09:15:30Z and always uses UTC.
	ISOInstant = (&Pattern{text: "ISO_INSTANT", elems: append(isoLocalDateTime(),
		&offsetElem{letter: 'X', width: 3})}).WithZone(UTC)
)

func isoLocalDate() []element {
	return []element{
		&numberElem{f: fieldYear, min: 4, max: maxYearDigits, sign: signExceedsPad},
		&literalElem{s: "-"},
		&numberElem{f: fieldMonth, min: 2, max: 2},
		&literalElem{s: "-"},
		&numberElem{f: fieldDay, min: 2, max: 2},
	}
}

func isoLocalTime() []element {
	return []element{
		&numberElem{f: fieldHour, min: 2, max: 2},
		&literalElem{s: ":"},
		&numberElem{f: fieldMinute, min: 2, max: 2},
		&optionalElem{elems: []element{
			&literalElem{s: ":"},
			&numberElem{f: fieldSecond, min: 2, max: 2},
			&optionalElem{elems: []element{
				&fractionElem{min: 0, max: 9, point: true},
			}},
		}},
	}
}

func isoLocalDateTime() []element {
	elems := isoLocalDate()
	elems = append(elems, &literalElem{s: "T"})
	return append(elems, isoLocalTime()...)
}

// namedPatterns are accepted wherever pattern text is read from outside
// the process.
var namedPatterns = map[string]*Pattern{
	"ISO_LOCAL_DATE_TIME":  ISOLocalDateTime,
	"ISO_LOCAL_DATE":       ISOLocalDate,
	"ISO_LOCAL_TIME":       ISOLocalTime,
	"ISO_OFFSET_DATE_TIME": ISOOffsetDateTime,
	"ISO_INSTANT":          ISOInstant,
}

// LookupPattern returns a predefined pattern by name, or compiles text.
func LookupPattern(text string) (*Pattern, error) {
	if p, ok := namedPatterns[text]; ok {
		return p, nil
	}
	return CompilePattern(text)
}
