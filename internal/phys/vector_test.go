package phys

import (
	"math"
	"testing"
)

func TestVec3_Length(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected float64
	}{
		{Vec3{3, 4, 0}, 5.0},
		{Vec3{1, 0, 0}, 1.0},
		{Vec3{0, 0, 0}, 0.0},
		{Vec3{1, 1, 1}, math.Sqrt(3)},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Length(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec3_Normalized(t *testing.T) {
	v := Vec3{0, -10, 0}
	n := v.Normalized()
	if n.X != 0 || n.Y != -1 || n.Z != 0 {
		t.Errorf("Normalized failed: got %v", n)
	}
}

func TestVec3_Normalized_Zero(t *testing.T) {
	n := Vec3{}.Normalized()
	if n != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", n)
	}
	if !n.IsValid() {
		t.Error("normalized zero vector must not contain NaN")
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot failed: got %v", dot)
	}
}

func TestVec3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zero", Vec3{}, true},
		{"normal", Vec3{1, -2, 3}, true},
		{"with NaN", Vec3{1, math.NaN(), 0}, false},
		{"with +Inf", Vec3{math.Inf(1), 0, 0}, false},
		{"with -Inf", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec3_Horizontal(t *testing.T) {
	v := Vec3{3, -50, 4}
	h := v.Horizontal()
	if h != (Vec3{3, 0, 4}) {
		t.Errorf("Horizontal failed: got %v", h)
	}
}
