package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name       string
		existing   Label
		incoming   Label
		wantValue  string
		wantSource string
	}{
		{
			name:       "both present",
			existing:   Label{Value: "a", Source: "score"},
			incoming:   Label{Value: "b", Source: "normalize"},
			wantValue:  "a|b",
			wantSource: "score,normalize",
		},
		{
			name:       "empty existing",
			existing:   Label{},
			incoming:   Label{Value: "b", Source: "filter"},
			wantValue:  "b",
			wantSource: "filter",
		},
		{
			name:       "empty incoming",
			existing:   Label{Value: "a", Source: "score"},
			incoming:   Label{},
			wantValue:  "a",
			wantSource: "score",
		},
		{
			name:       "missing incoming source",
			existing:   Label{Value: "a", Source: "score"},
			incoming:   Label{Value: "b"},
			wantValue:  "a|b",
			wantSource: "score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeLabel(tt.existing, tt.incoming)
			if got.Value != tt.wantValue || got.Source != tt.wantSource {
				t.Fatalf("merged = %+v, want value=%q source=%q", got, tt.wantValue, tt.wantSource)
			}
		})
	}
}
