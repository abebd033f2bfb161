package models

import "testing"

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
		want         int
	}{
		{name: "seven of ten", score: 7, total: 10, want: 70},
		{name: "one of three", score: 1, total: 3, want: 33},
		{name: "two of three", score: 2, total: 3, want: 67},
		{name: "half rounds up", score: 1, total: 8, want: 13},
		{name: "five of eight rounds up", score: 5, total: 8, want: 63},
		{name: "perfect", score: 10, total: 10, want: 100},
		{name: "zero score", score: 0, total: 10, want: 0},
		{name: "zero total", score: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccuracyPercent(tt.score, tt.total); got != tt.want {
				t.Fatalf("AccuracyPercent(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
			}
		})
	}
}
