package normals

import (
	"math"
	"strconv"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFaceNormal_Winding(t *testing.T) {
	// Counter-clockwise in the XY plane must point along +Z.
	n, ok := FaceNormal(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	if !ok {
		t.Fatal("expected valid face normal")
	}
	if n != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("expected (0,0,1), got %v", n)
	}

	// Reversed winding flips the sign.
	n, ok = FaceNormal(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{1, 0, 0},
	)
	if !ok {
		t.Fatal("expected valid face normal")
	}
	if n != (mgl64.Vec3{0, 0, -1}) {
		t.Errorf("expected (0,0,-1), got %v", n)
	}
}

func TestFaceNormal_AreaWeighting(t *testing.T) {
	// Doubling the triangle's edges quadruples the cross product length.
	small, ok := FaceNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	if !ok {
		t.Fatal("expected valid face normal")
	}
	big, ok := FaceNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 2, 0})
	if !ok {
		t.Fatal("expected valid face normal")
	}
	if got := big.Len() / small.Len(); math.Abs(got-4) > 1e-12 {
		t.Errorf("expected 4x length ratio, got %v", got)
	}
}

func TestFaceNormal_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 mgl64.Vec3
	}{
		{"coincident", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}},
		{"two equal", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}},
		{"collinear", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FaceNormal(tt.v0, tt.v1, tt.v2); ok {
				t.Error("expected degenerate")
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000000"},
		{1, "1.000000"},
		{-1, "-1.000000"},
		{1 / math.Sqrt2, "0.707107"},
		{-1 / math.Sqrt2, "-0.707107"},
		{0.1234564, "0.123456"},
		{0.1234567, "0.123457"},
	}
	for _, tt := range tests {
		if got := formatComponent(tt.in); got != tt.want {
			t.Errorf("formatComponent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat_Vector(t *testing.T) {
	x, y, z := Format(mgl64.Vec3{0, 1 / math.Sqrt2, 1 / math.Sqrt2})
	if x != "0.000000" || y != "0.707107" || z != "0.707107" {
		t.Errorf("got (%s, %s, %s)", x, y, z)
	}
}

func TestNormalizeOrFallback(t *testing.T) {
	if got := normalizeOrFallback(mgl64.Vec3{0, 0, 2}); got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("expected (0,0,1), got %v", got)
	}
	if got := normalizeOrFallback(mgl64.Vec3{}); got != FallbackNormal {
		t.Errorf("expected fallback, got %v", got)
	}
}

// parseNormal reads back a formatted normal for length checks.
func parseNormal(t *testing.T, x, y, z string) mgl64.Vec3 {
	t.Helper()
	var out mgl64.Vec3
	for i, s := range []string{x, y, z} {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("unparsable normal component %q: %v", s, err)
		}
		out[i] = f
	}
	return out
}
