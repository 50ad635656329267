package timeutil

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// DateLayout is the ISO 8601 calendar-date layout.
const DateLayout = "2006-01-02"

// cborTagFullDate is the CBOR tag for an RFC 3339 full-date string (RFC 8943).
const cborTagFullDate = 1004

var cborFullDatePrefix = []byte{0xd9, 0x03, 0xec}

const cborNull = 0xf6

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar date of now with the time of day dropped.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range days such as
// 2025-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("timeutil: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes d as "YYYY-MM-DD", or null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves d unchanged.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timeutil: invalid date %s", data)
	}
	return d.UnmarshalText(data[1 : len(data)-1])
}

// MarshalCBOR encodes d as a tag 1004 full-date string.
func (d Date) MarshalCBOR() ([]byte, error) {
	if d.IsZero() {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(cbor.Tag{Number: cborTagFullDate, Content: d.String()})
}

// UnmarshalCBOR accepts a tag 1004 full-date string or a bare text string.
func (d *Date) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return errors.New("timeutil: empty CBOR data")
	}
	if data[0] == cborNull {
		return nil
	}
	data = bytes.TrimPrefix(data, cborFullDatePrefix)
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timeutil: decode CBOR date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}
