package physics

import (
	"math"
	"testing"
)

func TestApplyGravity(t *testing.T) {
	cases := []struct {
		name     string
		vy       float64
		dt       float64
		expected float64
	}{
		{"accelerates_downward", 0, 0.1, 180},
		{"caps_at_terminal", 740, 0.1, 750},
		{"already_terminal", 750, 0.1, 750},
		{"upward_untouched_by_cap", -520, 0.01, -502},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ApplyGravity(c.vy, 1800, 750, c.dt)
			if math.Abs(got-c.expected) > 1e-9 {
				t.Fatalf("expected vy %v, got %v", c.expected, got)
			}
		})
	}
}

func TestApproach(t *testing.T) {
	cases := []struct {
		name                      string
		current, target, maxDelta float64
		expected                  float64
	}{
		{"toward_positive", 0, 100, 30, 30},
		{"toward_negative", 0, -100, 30, -30},
		{"no_overshoot_up", 90, 100, 30, 100},
		{"no_overshoot_down", -90, -100, 30, -100},
		{"already_there", 50, 50, 30, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Approach(c.current, c.target, c.maxDelta)
			if got != c.expected {
				t.Fatalf("Approach(%v, %v, %v) = %v, expected %v",
					c.current, c.target, c.maxDelta, got, c.expected)
			}
		})
	}
}

func TestClampSpeed(t *testing.T) {
	if got := ClampSpeed(1000, 750); got != 750 {
		t.Fatalf("expected 750, got %v", got)
	}
	if got := ClampSpeed(-1000, 750); got != -750 {
		t.Fatalf("expected -750, got %v", got)
	}
	if got := ClampSpeed(300, 750); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(5) != 1 || Sign(-5) != -1 || Sign(0) != 0 {
		t.Fatalf("Sign(5)=%v Sign(-5)=%v Sign(0)=%v", Sign(5), Sign(-5), Sign(0))
	}
}
