package astro

import (
	"math"
	"testing"
)

func TestVec3Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{0, 0, 0}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"unit y", Vec3{0, 1, 0}, 1},
		{"unit z", Vec3{0, 0, 1}, 1},
		{"3-4-5", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{-3, -4, 0}, 5},
		{"3D", Vec3{1, 2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Norm()
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want Vec3
	}{
		{"unit x", Vec3{5, 0, 0}, Vec3{1, 0, 0}},
		{"unit y", Vec3{0, 3, 0}, Vec3{0, 1, 0}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math.Sqrt(2), 1 / math.Sqrt(2), 0}},
		{"zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalized()
			if math.Abs(got.X-tt.want.X) > 1e-10 ||
				math.Abs(got.Y-tt.want.Y) > 1e-10 ||
				math.Abs(got.Z-tt.want.Z) > 1e-10 {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y cross z", Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"z cross x", Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"anticommutative", Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"parallel", Vec3{2, 0, 0}, Vec3{5, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cross(tt.b)
			if got.Sub(tt.want).Norm() > 1e-12 {
				t.Errorf("Cross() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Angle(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same", Vec3{1, 0, 0}, Vec3{3, 0, 0}, 0},
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 0, 2}, math.Pi / 2},
		{"opposite", Vec3{1, 1, 0}, Vec3{-1, -1, 0}, math.Pi},
		{"45 deg", Vec3{1, 0, 0}, Vec3{1, 1, 0}, math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Angle(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateVector(t *testing.T) {
	z := Vec3{0, 0, 1}
	got := RotateVector(z, math.Pi/2, Vec3{1, 0, 0})
	if got.Sub(Vec3{0, 1, 0}).Norm() > 1e-12 {
		t.Errorf("RotateVector(z, 90°, x) = %v, want +y", got)
	}

	// Rotation about the vector itself leaves it unchanged.
	v := Vec3{1, 2, 3}.Normalized()
	if got := RotateVector(v, 1.234, v); got.Sub(v).Norm() > 1e-12 {
		t.Errorf("RotateVector about itself = %v, want %v", got, v)
	}

	// Length is preserved.
	k := Vec3{1, -1, 2}.Normalized()
	w := Vec3{-4, 0.5, 7}
	if got := RotateVector(k, 2.5, w); math.Abs(got.Norm()-w.Norm()) > 1e-9 {
		t.Errorf("RotateVector changed length: %v -> %v", w.Norm(), got.Norm())
	}
}

func TestTransformThen(t *testing.T) {
	smToNB := NewTransform(RotX(0.3), FrameSM, FrameNB)
	brcsToSM := NewTransform(RotZ(1.1), FrameBRCS, FrameSM)

	chained := brcsToSM.Then(smToNB)
	if chained.From != FrameBRCS || chained.To != FrameNB {
		t.Fatalf("chained frames = %s, want BRCS->NB", chained)
	}

	v := Vec3{0.2, -0.7, 0.4}
	want := smToNB.Apply(brcsToSM.Apply(v))
	if got := chained.Apply(v); got.Sub(want).Norm() > 1e-12 {
		t.Errorf("chained.Apply = %v, want %v", got, want)
	}

	back := chained.Inverse().Apply(chained.Apply(v))
	if back.Sub(v).Norm() > 1e-12 {
		t.Errorf("inverse round trip = %v, want %v", back, v)
	}
}

func TestTransformThenFrameMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched frames")
		}
	}()
	a := NewTransform(Identity(), FrameBRCS, FrameSM)
	b := NewTransform(Identity(), FrameNB, FrameSB)
	_ = a.Then(b)
}
