// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import "testing"

func TestTuningFor(t *testing.T) {
	tests := []struct {
		name     string
		inputLen int
		wantMax  int
		wantMin  int
	}{
		{"small input floors min length", 10, 20, 20},
		{"mid-size input scales both", 100, 200, 50},
		{"large input caps max length", 2000, 1024, 1000},
		{"boundary at the cap", 512, 1024, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TuningFor(tt.inputLen)
			if got.MaxLength != tt.wantMax {
				t.Errorf("MaxLength = %d, want %d", got.MaxLength, tt.wantMax)
			}
			if got.MinLength != tt.wantMin {
				t.Errorf("MinLength = %d, want %d", got.MinLength, tt.wantMin)
			}
		})
	}
}

func TestTuningSamplingParamsFixed(t *testing.T) {
	got := TuningFor(100)
	if got.Temperature != 0.9 || got.TopP != 0.95 || got.TopK != 50 || got.RepetitionPenalty != 1.2 {
		t.Errorf("unexpected sampling params: %+v", got)
	}
}
