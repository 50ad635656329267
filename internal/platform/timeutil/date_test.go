package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		want  Date
		valid bool
	}{
		{"2025-12-01", Date{2025, time.December, 1}, true},
		{"2024-02-29", Date{2024, time.February, 29}, true},
		{"2025-02-29", Date{}, false},
		{"2025-13-01", Date{}, false},
		{"2025-1-1", Date{}, false},
		{"01/12/2025", Date{}, false},
		{"2025-12-01T00:00:00Z", Date{}, false},
		{"", Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.valid != (err == nil) {
				t.Fatalf("ParseDate(%q) error = %v, want valid=%v", tt.in, err, tt.valid)
			}
			if got != tt.want {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_String(t *testing.T) {
	d := Date{Year: 825, Month: time.March, Day: 7}
	if got := d.String(); got != "0825-03-07" {
		t.Fatalf("expected 0825-03-07, got %q", got)
	}
}

func TestToday_DropsTimeOfDay(t *testing.T) {
	late := time.Date(2025, 6, 1, 23, 59, 59, 0, time.Local)
	if got := Today(late); got != (Date{2025, time.June, 1}) {
		t.Fatalf("expected 2025-06-01, got %v", got)
	}
	early := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if got := Today(early); got != (Date{2025, time.June, 1}) {
		t.Fatalf("expected 2025-06-01, got %v", got)
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2025-06-01")
	b := MustParseDate("2025-06-02")
	c := MustParseDate("2026-01-01")

	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatal("Before ordering broken")
	}
	if !c.After(b) || a.After(a) {
		t.Fatal("After ordering broken")
	}
	if a.Compare(a) != 0 || a.Compare(c) != -1 || c.Compare(a) != 1 {
		t.Fatal("Compare ordering broken")
	}
}

func TestDate_AddDays(t *testing.T) {
	d := MustParseDate("2024-02-28")
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("expected leap day, got %s", got)
	}
	if got := d.AddDays(-59).String(); got != "2023-12-31" {
		t.Fatalf("expected 2023-12-31, got %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Start Date `json:"start"`
	}
	b, err := json.Marshal(wrapper{Start: MustParseDate("2025-12-01")})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `{"start":"2025-12-01"}` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var w wrapper
	if err := json.Unmarshal(b, &w); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if w.Start.String() != "2025-12-01" {
		t.Fatalf("roundtrip mismatch: %v", w.Start)
	}

	if err := json.Unmarshal([]byte(`{"start":"2025-12-32"}`), &w); err == nil {
		t.Fatal("expected error for invalid day")
	}
}

func TestDate_ZeroJSONIsNull(t *testing.T) {
	b, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null, got %s", b)
	}
}

func TestDate_CBOR(t *testing.T) {
	d := MustParseDate("2025-12-01")
	b, err := cbor.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if b[0] != 0xd9 || b[1] != 0x03 || b[2] != 0xec {
		t.Fatalf("expected tag 1004 prefix, got % x", b[:3])
	}

	var decoded Date
	if err := cbor.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded != d {
		t.Fatalf("roundtrip mismatch: %v != %v", decoded, d)
	}

	bare, _ := cbor.Marshal("2025-12-01")
	if err := decoded.UnmarshalCBOR(bare); err != nil {
		t.Fatalf("bare text string: %v", err)
	}
	if err := decoded.UnmarshalCBOR(nil); err == nil {
		t.Fatal("expected error for empty CBOR data")
	}
}
