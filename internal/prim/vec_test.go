package prim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-7, 0.0)

func TestNormalizeSimple(t *testing.T) {
	tests := []struct {
		v    Vec3
		want Vec3
	}{
		{v: Vec3{X: 2, Y: 0, Z: 0}, want: Vec3{X: 1, Y: 0, Z: 0}},
		{v: Vec3{X: 0, Y: -12, Z: 5}, want: Vec3{X: 0, Y: -12.0 / 13, Z: 5.0 / 13}},
		{v: Vec3{X: 3, Y: 4, Z: 0}, want: Vec3{X: 3.0 / 5.0, Y: 4.0 / 5.0, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			got := tt.v.Normalize()
			if diff := cmp.Diff(got, tt.want, approxOpts); diff != "" {
				t.Errorf("Vec3.Normalize() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestNormalizeIsUnitLength(t *testing.T) {
	tests := []struct {
		v Vec3
	}{
		{v: Vec3{X: 2, Y: 0, Z: 0}},
		{v: Vec3{X: 12, Y: 14, Z: 23}},
		{v: Vec3{X: 0, Y: 83, Z: 0.32}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			normed := tt.v.Normalize()
			want := 1.0
			got := normed.Length()
			if diff := cmp.Diff(got, want, approxOpts); diff != "" {
				t.Errorf("Vec3.Length() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{name: "x cross y is z", a: Vec3{X: 1}, b: Vec3{Y: 1}, want: Vec3{Z: 1}},
		{name: "y cross z is x", a: Vec3{Y: 1}, b: Vec3{Z: 1}, want: Vec3{X: 1}},
		{name: "parallel vectors", a: Vec3{X: 2, Y: 3, Z: 4}, b: Vec3{X: 4, Y: 6, Z: 8}, want: Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cross(tt.b)
			if diff := cmp.Diff(got, tt.want, approxOpts); diff != "" {
				t.Errorf("Vec3.Cross() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestCrossAnticommutative(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -2, Y: 0.5, Z: 7}
	if diff := cmp.Diff(a.Cross(b), b.Cross(a).Neg(), approxOpts); diff != "" {
		t.Errorf("a x b != -(b x a) (-got +want):\n%s", diff)
	}
}

func TestClamp01(t *testing.T) {
	got := Vec3{X: -1, Y: 0.5, Z: 3}.Clamp01()
	want := Vec3{X: 0, Y: 0.5, Z: 1}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Vec3.Clamp01() mismatch (-got +want):\n%s", diff)
	}
}
