package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

// Wire patterns for the text forms in protocol.Value.
var (
	instantText       = timepal.ISOInstant
	localDateTimeText = timepal.ISOLocalDateTime
	localDateText     = timepal.ISOLocalDate
)

// KindOf returns the representation of v.
func KindOf(v timepal.Temporal) (Representation, error) {
	switch v.(type) {
	case timepal.Instant:
		return RepresentationInstant, nil
	case timepal.WallClock:
		return RepresentationWallClock, nil
	case timepal.LocalDateTime:
		return RepresentationLocalDateTime, nil
	case timepal.LocalDate:
		return RepresentationLocalDate, nil
	}
	return "", fmt.Errorf("%w: %T has no wire representation", ErrInvalidInput, v)
}

// Decode converts a wire value into a timepal value. Absent wire values
// decode to the zero value of their kind.
func Decode(v protocol.Value) (timepal.Temporal, error) {
	kind := Representation(v.Kind)
	if !IsValidRepresentation(kind) {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, v.Kind)
	}
	hasText, hasMillis := v.Text != "", v.EpochMillis != nil
	if hasText && hasMillis {
		return nil, fmt.Errorf("%w: %s has both text and epoch_millis", ErrInvalidInput, kind)
	}

	switch kind {
	case RepresentationInstant:
		switch {
		case hasMillis:
			return timepal.InstantOf(time.UnixMilli(*v.EpochMillis)), nil
		case hasText:
			p, err := instantText.Parse(v.Text)
			if err != nil {
				return nil, err
			}
			return p.Instant()
		}
		return timepal.Instant{}, nil

	case RepresentationWallClock:
		if hasText {
			return nil, fmt.Errorf("%w: wall_clock takes epoch_millis", ErrInvalidInput)
		}
		if hasMillis {
			return timepal.WallClockFromMillis(*v.EpochMillis), nil
		}
		return timepal.WallClock{}, nil

	case RepresentationLocalDateTime:
		if hasMillis {
			return nil, fmt.Errorf("%w: local_date_time takes text", ErrInvalidInput)
		}
		if hasText {
			return timepal.ParseLocalDateTime(localDateTimeText, v.Text)
		}
		return timepal.LocalDateTime{}, nil

	default:
		if hasMillis {
			return nil, fmt.Errorf("%w: local_date takes text", ErrInvalidInput)
		}
		if hasText {
			return timepal.ParseLocalDate(localDateText, v.Text)
		}
		return timepal.LocalDate{}, nil
	}
}

// Encode converts a timepal value into its wire form.
func Encode(v timepal.Temporal) (protocol.Value, error) {
	kind, err := KindOf(v)
	if err != nil {
		return protocol.Value{}, err
	}
	out := protocol.Value{Kind: string(kind)}
	if v.IsZero() {
		return out, nil
	}

	switch t := v.(type) {
	case timepal.Instant:
		out.Text, err = instantText.Format(t)
	case timepal.WallClock:
		out.EpochMillis = protocol.Millis(t.UnixMilli())
	case timepal.LocalDateTime:
		out.Text, err = localDateTimeText.Format(t)
	case timepal.LocalDate:
		out.Text, err = localDateText.Format(t)
	}
	if err != nil {
		return protocol.Value{}, err
	}
	return out, nil
}

// Convert turns v into the representation to. Local values are resolved at
// the facade's default offset; a local date has no time of day and converts
// to nothing else.
func Convert(f *timepal.Facade, v timepal.Temporal, to Representation) (timepal.Temporal, error) {
	if !IsValidRepresentation(to) {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, to)
	}
	from, err := KindOf(v)
	if err != nil {
		return nil, err
	}
	if from == to {
		return v, nil
	}
	if v.IsZero() {
		return nil, fmt.Errorf("%w: %s value", timepal.ErrNullInput, from)
	}

	offset := f.Config().Offset
	switch t := v.(type) {
	case timepal.Instant:
		switch to {
		case RepresentationWallClock:
			return timepal.ToWallClock(t)
		case RepresentationLocalDateTime:
			return t.In(offset), nil
		case RepresentationLocalDate:
			return t.In(offset).LocalDate(), nil
		}
	case timepal.WallClock:
		i, err := timepal.ToInstant(t)
		if err != nil {
			return nil, err
		}
		return Convert(f, i, to)
	case timepal.LocalDateTime:
		switch to {
		case RepresentationWallClock:
			return f.LocalToWallClock(t)
		case RepresentationInstant:
			return t.Resolve(offset)
		case RepresentationLocalDate:
			return t.LocalDate(), nil
		}
	}
	return nil, fmt.Errorf("%w: cannot convert %s to %s", ErrInvalidInput, from, to)
}

// Compare orders two values of the same absolute kind. Absent values sort
// first.
func Compare(a, b timepal.Temporal) (int, error) {
	switch x := a.(type) {
	case timepal.Instant:
		if y, ok := b.(timepal.Instant); ok {
			return timepal.CompareInstants(x, y), nil
		}
	case timepal.WallClock:
		if y, ok := b.(timepal.WallClock); ok {
			return timepal.CompareWallClocks(x, y), nil
		}
	default:
		return 0, fmt.Errorf("%w: only instants and wall clocks compare", ErrInvalidInput)
	}
	return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrInvalidInput, a, b)
}

// Ordering is the result of Order.
type Ordering struct {
	Result int
	Order  []int
	Future []bool
	Past   []bool
}

// Order sorts values and classifies each against the facade's clock.
// It needs between 2 and MaxCompareValues values of one absolute kind.
func Order(f *timepal.Facade, values []timepal.Temporal) (Ordering, error) {
	if len(values) < 2 || len(values) > MaxCompareValues {
		return Ordering{}, fmt.Errorf("%w: compare takes 2 to %d values, got %d", ErrInvalidInput, MaxCompareValues, len(values))
	}
	for _, v := range values[1:] {
		if _, err := Compare(values[0], v); err != nil {
			return Ordering{}, err
		}
	}

	res := Ordering{
		Order:  make([]int, len(values)),
		Future: make([]bool, len(values)),
		Past:   make([]bool, len(values)),
	}
	res.Result, _ = Compare(values[0], values[1])

	for i, v := range values {
		res.Order[i] = i
		switch t := v.(type) {
		case timepal.Instant:
			res.Future[i], res.Past[i] = f.IsFuture(t), f.IsPast(t)
		case timepal.WallClock:
			res.Future[i], res.Past[i] = f.IsFutureWallClock(t), f.IsPastWallClock(t)
		}
	}
	slices.SortStableFunc(res.Order, func(i, j int) int {
		c, _ := Compare(values[i], values[j])
		return c
	})
	return res, nil
}
