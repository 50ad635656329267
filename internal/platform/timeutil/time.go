// Package timeutil provides wire-stable time and calendar-date types.
package timeutil

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

const (
	// RFC3339Millis is the timestamp layout used in API responses.
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"
	// RFC3339Micros is the timestamp layout used in structured logs.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z07:00"
)

// cborTagDateTime is the CBOR tag for an RFC 3339 date/time string (RFC 8949 §3.4.1).
const cborTagDateTime = 0xc0

// Time wraps time.Time and always serializes as UTC with millisecond precision.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the current time.
func Now() Time {
	return Time{Time: time.Now()}
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves t unchanged.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timeutil: invalid time %s", data)
	}
	parsed, err := parseTimestamp(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalCBOR encodes t as a tag 0 date/time string.
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{Number: 0, Content: t.UTC().Format(RFC3339Millis)})
}

// UnmarshalCBOR accepts a tag 0 date/time string or a bare text string.
func (t *Time) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return errors.New("timeutil: empty CBOR data")
	}
	if data[0] == cborTagDateTime {
		data = data[1:]
	}
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timeutil: decode CBOR time: %w", err)
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{RFC3339Millis, time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timeutil: invalid time %q", s)
}
