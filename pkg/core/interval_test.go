package core

import (
	"math"
	"testing"
)

func TestInterval_EmptyVersusZeroWidth(t *testing.T) {
	zero := NewInterval(2, 2)
	if zero.IsEmpty() {
		t.Error("Zero-width interval should not be empty")
	}
	if !zero.Contains(2) {
		t.Error("Zero-width interval should contain its endpoint")
	}

	if !EmptyInterval.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if EmptyInterval.Contains(0) {
		t.Error("EmptyInterval should contain nothing")
	}
	if !math.IsInf(UniverseInterval.Size(), 1) {
		t.Errorf("UniverseInterval size should be +Inf, got %g", UniverseInterval.Size())
	}
}

func TestInterval_ContainsSurrounds(t *testing.T) {
	i := NewInterval(0, 1)
	tests := []struct {
		x                   float64
		contains, surrounds bool
	}{
		{-0.5, false, false},
		{0, true, false},
		{0.5, true, true},
		{1, true, false},
		{1.5, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%g) = %v, expected %v", tt.x, got, tt.contains)
		}
		if got := i.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%g) = %v, expected %v", tt.x, got, tt.surrounds)
		}
	}
}

func TestInterval_ClampExpandEnclose(t *testing.T) {
	i := NewInterval(0, 0.999)
	if got := i.Clamp(2); got != 0.999 {
		t.Errorf("Clamp(2) = %g, expected 0.999", got)
	}
	if got := i.Clamp(-1); got != 0 {
		t.Errorf("Clamp(-1) = %g, expected 0", got)
	}

	expanded := NewInterval(1, 2).Expand(1)
	if expanded.Min != 0.5 || expanded.Max != 2.5 {
		t.Errorf("Expand(1) = %v, expected [0.5, 2.5]", expanded)
	}

	enclosing := NewIntervalEnclosing(NewInterval(-1, 0), NewInterval(3, 4))
	if enclosing.Min != -1 || enclosing.Max != 4 {
		t.Errorf("Enclosing = %v, expected [-1, 4]", enclosing)
	}
	if NewIntervalEnclosing(EmptyInterval, i) != i {
		t.Error("EmptyInterval should be the identity for enclosing")
	}
}
