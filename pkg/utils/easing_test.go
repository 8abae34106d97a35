package utils

import (
	"math"
	"testing"
)

func TestEasing(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64) float64
		input    float64
		expected float64
	}{
		{"缓出起点", EaseOutQuad, 0, 0},
		{"缓出中点", EaseOutQuad, 0.5, 0.75},
		{"缓出终点", EaseOutQuad, 1, 1},
		{"缓入起点", EaseInQuad, 0, 0},
		{"缓入中点", EaseInQuad, 0.5, 0.25},
		{"缓入终点", EaseInQuad, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("f(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0, 100, 0, 0},
		{"中点", 0, 100, 0.5, 50},
		{"终点", 0, 100, 1, 100},
		{"负数范围", -50, 50, 0.5, 0},
		{"逆向范围", 100, 0, 0.5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}
