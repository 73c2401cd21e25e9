package decode

import (
	"strconv"
	"strings"
	"time"
)

// DateStrategy controls how a field string is parsed into a time.Time.
type DateStrategy int

const (
	// DateDeferred leaves the raw string undecoded (caller decides later).
	DateDeferred DateStrategy = iota
	// DateSecondsSinceEpoch parses a Unix timestamp in seconds.
	DateSecondsSinceEpoch
	// DateMillisSinceEpoch parses a Unix timestamp in milliseconds.
	DateMillisSinceEpoch
	// DateISO8601 parses RFC 3339 / ISO 8601 timestamps.
	DateISO8601
	// DateFormatted parses a single fixed Go reference-time layout.
	DateFormatted
	// DateFlexible tries an ordered table of common layouts.
	DateFlexible
	// DateFlexibleWithHint tries Format first, falling back to the
	// flexible table on failure.
	DateFlexibleWithHint
)

// flexibleDateLayouts is ordered most-specific first (time zone and
// fractional seconds before bare dates) so a more general pattern never
// truncates a more specific one, per spec.md §4.4's precedence rule.
// Grounded structurally on pkg/csv/converters.go's DateConverter/
// TimeConverter/DateTimeConverter default-layout fields.
var flexibleDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006/01/02",
	"02/01/2006",
}

// DateDecoder applies a DateStrategy to a field value.
type DateDecoder struct {
	Strategy DateStrategy
	Format   string
	Location *time.Location
}

// StandardISO8601Decoder returns a DateDecoder parsing RFC 3339 timestamps.
func StandardISO8601Decoder() DateDecoder {
	return DateDecoder{Strategy: DateISO8601}
}

// FlexibleDateDecoder returns a DateDecoder that tries the layout table.
func FlexibleDateDecoder() DateDecoder {
	return DateDecoder{Strategy: DateFlexible}
}

// FormattedDateDecoder returns a DateDecoder parsing a single layout.
func FormattedDateDecoder(layout string) DateDecoder {
	return DateDecoder{Strategy: DateFormatted, Format: layout}
}

// FlexibleWithHintDecoder returns a DateDecoder that tries hint first,
// then falls back to the flexible table.
func FlexibleWithHintDecoder(hint string) DateDecoder {
	return DateDecoder{Strategy: DateFlexibleWithHint, Format: hint}
}

// Decode converts value to time.Time.
func (d DateDecoder) Decode(value string, loc Location) (time.Time, error) {
	v := strings.TrimSpace(value)
	tz := d.Location
	if tz == nil {
		tz = time.UTC
	}

	switch d.Strategy {
	case DateDeferred:
		return time.Time{}, nil

	case DateSecondsSinceEpoch:
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, &TypeMismatch{Expected: "date(seconds)", Actual: value, Location: loc}
		}
		return time.Unix(secs, 0).In(tz), nil

	case DateMillisSinceEpoch:
		millis, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, &TypeMismatch{Expected: "date(millis)", Actual: value, Location: loc}
		}
		return time.UnixMilli(millis).In(tz), nil

	case DateISO8601:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, &TypeMismatch{Expected: "date(iso8601)", Actual: value, Location: loc}
		}
		return t, nil

	case DateFormatted:
		t, err := time.ParseInLocation(d.Format, v, tz)
		if err != nil {
			return time.Time{}, &TypeMismatch{Expected: "date(" + d.Format + ")", Actual: value, Location: loc}
		}
		return t, nil

	case DateFlexibleWithHint:
		if t, err := time.ParseInLocation(d.Format, v, tz); err == nil {
			return t, nil
		}
		return parseFlexibleDate(v, tz, loc)

	default: // DateFlexible
		return parseFlexibleDate(v, tz, loc)
	}
}

func parseFlexibleDate(v string, tz *time.Location, loc Location) (time.Time, error) {
	for _, layout := range flexibleDateLayouts {
		if t, err := time.ParseInLocation(layout, v, tz); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TypeMismatch{Expected: "date(flexible)", Actual: v, Location: loc}
}
