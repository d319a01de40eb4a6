package timeparser

import (
	"testing"
	"time"
)

func TestParseDeviceTimestamp_ZSuffix(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01T12:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, ts)
	}
}

func TestParseDeviceTimestamp_ExplicitOffset(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01T12:00:00+00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ToSQL(ts) != "2024-01-01 12:00:00" {
		t.Errorf("expected canonical 2024-01-01 12:00:00, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_NonUTCOffsetNormalizes(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01T12:00:00+05:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ToSQL(ts) != "2024-01-01 06:30:00" {
		t.Errorf("expected canonical 2024-01-01 06:30:00, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_NaiveTreatedAsUTC(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-06-15T08:30:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ToSQL(ts) != "2024-06-15 08:30:45" {
		t.Errorf("expected canonical 2024-06-15 08:30:45, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_FractionalSeconds(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01T12:00:00.123456Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ToSQL(ts) != "2024-01-01 12:00:00" {
		t.Errorf("expected fractional seconds to truncate in canonical form, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_CanonicalFormAccepted(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01 12:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ToSQL(ts) != "2024-01-01 12:00:00" {
		t.Errorf("expected passthrough of canonical form, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_MinutePrecision(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01T12:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ToSQL(ts) != "2024-01-01 12:00:00" {
		t.Errorf("expected canonical 2024-01-01 12:00:00, got %s", ToSQL(ts))
	}

	ts, err = ParseDeviceTimestamp("2024-01-01T12:30+05:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ToSQL(ts) != "2024-01-01 07:00:00" {
		t.Errorf("expected canonical 2024-01-01 07:00:00, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_DateOnly(t *testing.T) {
	ts, err := ParseDeviceTimestamp("2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ToSQL(ts) != "2024-01-01 00:00:00" {
		t.Errorf("expected midnight UTC, got %s", ToSQL(ts))
	}
}

func TestParseDeviceTimestamp_Invalid(t *testing.T) {
	if _, err := ParseDeviceTimestamp("not-a-timestamp"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
	if _, err := ParseDeviceTimestamp(""); err == nil {
		t.Error("expected error for empty timestamp")
	}
}
