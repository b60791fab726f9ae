package timepal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// element is one compiled piece of a Pattern.
type element interface {
	print(b *strings.Builder, fs fieldSet) error
	parse(st *parseState, text string, pos int) (int, bool)
}

func missing(f field) error {
	return fmt.Errorf("%w: %s", ErrFieldUnavailable, f)
}

type literalElem struct {
	s string
}

func (e *literalElem) print(b *strings.Builder, _ fieldSet) error {
	b.WriteString(e.s)
	return nil
}

func (e *literalElem) parse(_ *parseState, text string, pos int) (int, bool) {
	if !strings.HasPrefix(text[pos:], e.s) {
		return pos, false
	}
	return pos + len(e.s), true
}

type numberKind uint8

const (
	numPlain numberKind = iota
	numTwoDigitYear
	numClockHour24 // k: 1-24
	numClockHour12 // h: 1-12
)

type signStyle uint8

const (
	signNone signStyle = iota
	signNormal
	signExceedsPad // '+' once the value is wider than min
)

type numberElem struct {
	f       field
	min     int
	max     int
	kind    numberKind
	sign    signStyle
	reserve int // digits left for fixed-width neighbours when parsing
}

func (e *numberElem) print(b *strings.Builder, fs fieldSet) error {
	if !fs.has(e.f) {
		return missing(e.f)
	}
	v := fs.get(e.f)
	switch e.kind {
	case numTwoDigitYear:
		v %= 100
		if v < 0 {
			v += 100
		}
	case numClockHour24:
		if v == 0 {
			v = 24
		}
	case numClockHour12:
		if v == 0 {
			v = 12
		}
	}

	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	if len(digits) > e.max {
		return fmt.Errorf("%w: %s value %d exceeds %d digits", ErrInvalidField, e.f, fs.get(e.f), e.max)
	}
	switch {
	case neg:
		b.WriteByte('-')
	case e.sign == signExceedsPad && len(digits) > e.min:
		b.WriteByte('+')
	}
	for i := len(digits); i < e.min; i++ {
		b.WriteByte('0')
	}
	b.WriteString(digits)
	return nil
}

func (e *numberElem) parse(st *parseState, text string, pos int) (int, bool) {
	sign := int64(1)
	if e.sign != signNone && pos < len(text) && (text[pos] == '-' || text[pos] == '+') {
		if text[pos] == '-' {
			sign = -1
		}
		pos++
	}

	avail := countDigits(text, pos, e.max+e.reserve)
	n := avail - e.reserve
	if n > e.max {
		n = e.max
	}
	if n < e.min {
		return pos, false
	}
	v, err := strconv.ParseInt(text[pos:pos+n], 10, 64)
	if err != nil {
		return pos, false
	}
	v *= sign

	switch e.kind {
	case numTwoDigitYear:
		v += 2000
	case numClockHour24:
		if v < 1 || v > 24 {
			return pos, false
		}
		v %= 24
	case numClockHour12:
		if v < 1 || v > 12 {
			return pos, false
		}
		v %= 12
	}
	if !st.set(e.f, v) {
		return pos, false
	}
	return pos + n, true
}

func countDigits(text string, pos, limit int) int {
	n := 0
	for pos+n < len(text) && n < limit && text[pos+n] >= '0' && text[pos+n] <= '9' {
		n++
	}
	return n
}

type textStyle uint8

const (
	textShort textStyle = iota
	textFull
	textNarrow
)

type textElem struct {
	f     field
	style textStyle
}

func (e *textElem) print(b *strings.Builder, fs fieldSet) error {
	if !fs.has(e.f) {
		return missing(e.f)
	}
	b.WriteString(e.names()[fs.get(e.f)])
	return nil
}

func (e *textElem) parse(st *parseState, text string, pos int) (int, bool) {
	best, bestLen := -1, 0
	for v, name := range e.names() {
		if name == "" || len(name) <= bestLen {
			continue
		}
		if len(text)-pos >= len(name) && strings.EqualFold(text[pos:pos+len(name)], name) {
			best, bestLen = v, len(name)
		}
	}
	if best < 0 || !st.set(e.f, int64(best)) {
		return pos, false
	}
	return pos + bestLen, true
}

// names is indexed by field value.
func (e *textElem) names() []string {
	switch e.f {
	case fieldMonth:
		return monthNames[e.style]
	case fieldWeekday:
		return weekdayNames[e.style]
	}
	return []string{"AM", "PM"}
}

var monthNames, weekdayNames = buildNames()

func buildNames() (months, weekdays [3][]string) {
	for style := range months {
		months[style] = make([]string, 13)
		for m := time.January; m <= time.December; m++ {
			months[style][m] = styled(m.String(), textStyle(style))
		}
		weekdays[style] = make([]string, 7)
		for d := time.Sunday; d <= time.Saturday; d++ {
			weekdays[style][d] = styled(d.String(), textStyle(style))
		}
	}
	return months, weekdays
}

func styled(name string, style textStyle) string {
	switch style {
	case textShort:
		return name[:3]
	case textNarrow:
		return name[:1]
	}
	return name
}

type fractionElem struct {
	min   int
	max   int
	point bool
}

func (e *fractionElem) print(b *strings.Builder, fs fieldSet) error {
	if !fs.has(fieldNano) {
		return missing(fieldNano)
	}
	v := fs.get(fieldNano)
	if e.min == 0 && v == 0 {
		return nil
	}
	digits := fmt.Sprintf("%09d", v)[:e.max]
	for len(digits) > e.min && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	if e.point {
		b.WriteByte('.')
	}
	b.WriteString(digits)
	return nil
}

func (e *fractionElem) parse(st *parseState, text string, pos int) (int, bool) {
	need := e.min
	if e.point {
		if pos >= len(text) || text[pos] != '.' {
			return pos, e.min == 0
		}
		pos++
		need = max(need, 1)
	}
	n := countDigits(text, pos, e.max)
	if n < need {
		return pos, false
	}
	digits := text[pos:pos+n] + strings.Repeat("0", 9-n)
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || !st.set(fieldNano, v) {
		return pos, false
	}
	return pos + n, true
}

type offsetElem struct {
	letter byte // 'X', 'x' or 'Z'
	width  int
}

func (e *offsetElem) print(b *strings.Builder, fs fieldSet) error {
	if !fs.has(fieldOffset) {
		return missing(fieldOffset)
	}
	z := ZoneOffset(fs.get(fieldOffset))
	if z == UTC && e.letter == 'X' {
		b.WriteByte('Z')
		return nil
	}
	h, m, _ := z.split()
	switch {
	case e.letter == 'Z' || e.width == 2:
		fmt.Fprintf(b, "%c%02d%02d", z.sign(), h, m)
	case e.width == 3:
		fmt.Fprintf(b, "%c%02d:%02d", z.sign(), h, m)
	default:
		fmt.Fprintf(b, "%c%02d", z.sign(), h)
		if m != 0 {
			fmt.Fprintf(b, "%02d", m)
		}
	}
	return nil
}

func (e *offsetElem) parse(st *parseState, text string, pos int) (int, bool) {
	if e.letter == 'X' && pos < len(text) && text[pos] == 'Z' {
		return pos + 1, st.set(fieldOffset, 0)
	}
	if pos >= len(text) || (text[pos] != '+' && text[pos] != '-') {
		return pos, false
	}
	sign := 1
	if text[pos] == '-' {
		sign = -1
	}
	p := pos + 1
	if countDigits(text, p, 2) != 2 {
		return pos, false
	}
	hours, _ := strconv.Atoi(text[p : p+2])
	p += 2

	minutes := 0
	switch {
	case e.letter == 'Z' || e.width == 2:
		if countDigits(text, p, 2) != 2 {
			return pos, false
		}
		minutes, _ = strconv.Atoi(text[p : p+2])
		p += 2
	case e.width == 3:
		if p >= len(text) || text[p] != ':' || countDigits(text, p+1, 2) != 2 {
			return pos, false
		}
		minutes, _ = strconv.Atoi(text[p+1 : p+3])
		p += 3
	default:
		if countDigits(text, p, 2) == 2 {
			minutes, _ = strconv.Atoi(text[p : p+2])
			p += 2
		}
	}
	if minutes > 59 {
		return pos, false
	}
	z, err := OffsetSeconds(sign * (hours*3600 + minutes*60))
	if err != nil || !st.set(fieldOffset, int64(z)) {
		return pos, false
	}
	return p, true
}

type optionalElem struct {
	elems []element
}

func (e *optionalElem) print(b *strings.Builder, fs fieldSet) error {
	var sub strings.Builder
	for _, el := range e.elems {
		if err := el.print(&sub, fs); err != nil {
			if errors.Is(err, ErrFieldUnavailable) {
				return nil
			}
			return err
		}
	}
	b.WriteString(sub.String())
	return nil
}

func (e *optionalElem) parse(st *parseState, text string, pos int) (int, bool) {
	trial := st.clone()
	p := pos
	for _, el := range e.elems {
		var ok bool
		if p, ok = el.parse(trial, text, p); !ok {
			return pos, true
		}
	}
	st.vals = trial.vals
	return p, true
}
