package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestPoint3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		p     Point3
		valid bool
	}{
		{"origin", Point3{}, true},
		{"normal", Point3{1, -2, 3}, true},
		{"with NaN", Point3{1, math.NaN(), 0}, false},
		{"with +Inf", Point3{math.Inf(1), 0, 0}, false},
		{"with -Inf", Point3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPoint3_Arithmetic(t *testing.T) {
	a := Point3{1, 2, 3}
	b := Point3{4, 5, 6}

	if got := a.Add(b); got != (Point3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Point3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Point3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.AddScaled(b, 0.5); got != (Point3{3, 4.5, 6}) {
		t.Errorf("AddScaled failed: got %v", got)
	}
	if got := (Point3{3, 4, 0}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
	if got := (Point3{-7, 2, 3}).MaxAbs(); got != 7 {
		t.Errorf("MaxAbs = %v, want 7", got)
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "dt", Value: -1.0, Wrapped: ErrInvalidConfig}
	if err.Error() != "dt=-1: dynamo: invalid configuration" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("FieldError should unwrap to ErrInvalidConfig")
	}
}
