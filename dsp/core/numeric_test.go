package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		value, min, max float64
		want            float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -1, 0, 1, 0},
		{"above", 2, 0, 1, 1},
		{"swapped bounds", 2, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
				t.Fatalf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		a, b, eps float64
		want      bool
	}{
		{1, 1 + 1e-13, 1e-12, true},
		{1, 1.1, 1e-3, false},
		{0, 1e-13, 0, true},
		{1e6, 1e6 + 1e-7, 1e-12, true},
	}
	for _, tt := range tests {
		if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
			t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
		}
	}
}

func TestDecibels(t *testing.T) {
	for _, db := range []float64{-96, -20, -6, 0, 6} {
		if got := LinearToDB(DBToLinear(db)); !NearlyEqual(got, db, 1e-10) {
			t.Fatalf("LinearToDB(DBToLinear(%v)) = %v", db, got)
		}
	}
	if got := DBToLinear(-20); !NearlyEqual(got, 0.1, 1e-12) {
		t.Fatalf("DBToLinear(-20) = %v, want 0.1", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("LinearToDB(0) should be -Inf")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("LinearToDB(-1) should be NaN")
	}
}
