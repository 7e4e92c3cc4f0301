package feature

import (
	"math"
	"testing"
	"time"
)

func TestRecencyWeightAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timestamp string
		want      float64
		tolerance float64
	}{
		{"today", "2024-06-01T00:00:00Z", 1.0, 1e-9},
		{"half life", "2024-05-02T00:00:00Z", 0.5, 1e-9},
		{"very old clamps to floor", "2020-01-01", 0.1, 1e-9},
		{"future clamps to now", "2024-07-01T00:00:00Z", 1.0, 1e-9},
		{"empty is neutral", "", 0.5, 1e-9},
		{"garbage is neutral", "not-a-date", 0.5, 1e-9},
		{"no timezone parsed as utc", "2024-05-02T00:00:00", 0.5, 1e-9},
		{"date only", "2024-05-02", 0.5, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecencyWeightAt(tt.timestamp, now)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Fatalf("weight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecencyWeightMonotonic(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	prev := 2.0
	for days := 0; days <= 120; days += 10 {
		ts := now.AddDate(0, 0, -days).Format(time.RFC3339)
		w := RecencyWeightAt(ts, now)
		if w > prev {
			t.Fatalf("weight not monotonic at age %d: %v > %v", days, w, prev)
		}
		if w < 0.1 || w > 1.0 {
			t.Fatalf("weight %v out of [0.1, 1.0] at age %d", w, days)
		}
		prev = w
	}
}

func TestParseTimestamp(t *testing.T) {
	if _, ok := ParseTimestamp("2024-05-02 13:45:00"); !ok {
		t.Fatal("space-separated timestamp should parse")
	}
	if _, ok := ParseTimestamp(""); ok {
		t.Fatal("empty timestamp should not parse")
	}
}
