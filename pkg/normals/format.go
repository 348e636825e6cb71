package normals

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// normalDigits is the fixed-point precision of normal components in the
// document format.
const normalDigits = 6

// Format renders a normal using the document's 6-decimal fixed-point
// convention, e.g. "0.707107". Each component is rounded to the nearest
// 6-digit decimal; exact ties round to even, which is strconv's behavior
// when shortening a binary float. The same input vector always formats to
// the same text.
func Format(n mgl64.Vec3) (x, y, z string) {
	return formatComponent(n[0]), formatComponent(n[1]), formatComponent(n[2])
}

func formatComponent(f float64) string {
	return strconv.FormatFloat(f, 'f', normalDigits, 64)
}
