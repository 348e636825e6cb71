// Package normals recalculates per-vertex normals for Ogre mesh documents
// from their triangle geometry. Face normals are accumulated unnormalized,
// so larger triangles weigh more in the average (face-weighted, no angle
// weighting).
package normals

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the length below which a vector counts as zero.
const Epsilon = 1e-6

// FallbackNormal is assigned to vertices no valid face contributes to.
var FallbackNormal = mgl64.Vec3{0, 1, 0}

// FaceNormal computes the normal of the triangle (v0, v1, v2) as the cross
// product of its two edges from v0. Vertices listed counter-clockwise yield
// a normal pointing toward the viewer (right-hand rule). The result is not
// normalized: its length is twice the triangle's area, which area-weights
// the face's contribution during accumulation. ok is false for degenerate
// triangles (collinear or coincident corners), which must contribute
// nothing.
func FaceNormal(v0, v1, v2 mgl64.Vec3) (n mgl64.Vec3, ok bool) {
	n = v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Len() < Epsilon {
		return mgl64.Vec3{}, false
	}
	return n, true
}

// normalizeOrFallback returns the unit vector of v, or FallbackNormal when
// v is too short to normalize. The guard should be unreachable for sums of
// non-degenerate face normals but is kept for pathological geometry.
func normalizeOrFallback(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() < Epsilon {
		return FallbackNormal
	}
	return v.Normalize()
}
