package augment

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rotateVertical rotates positions (and normals, if requested) about the
// vertical y axis by the given angle. Points are row vectors, so each is
// multiplied on the right by the rotation matrix
//
//	[ cos  0  sin]
//	[   0  1    0]
//	[-sin  0  cos]
func rotateVertical(x *mat.Dense, angle float64, withNormals bool) {
	c, s := math.Cos(angle), math.Sin(angle)
	rot := [3][3]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
	applyRotation(x, rot, 0)
	if withNormals {
		applyRotation(x, rot, 3)
	}
}

// rotateEuler rotates positions (and normals, if requested) by the composed
// matrix Rz·Ry·Rx built from the three per-axis angles. Used for the small
// bounded perturbation stage.
func rotateEuler(x *mat.Dense, angles [3]float64, withNormals bool) {
	cx, sx := math.Cos(angles[0]), math.Sin(angles[0])
	cy, sy := math.Cos(angles[1]), math.Sin(angles[1])
	cz, sz := math.Cos(angles[2]), math.Sin(angles[2])

	rx := [3][3]float64{
		{1, 0, 0},
		{0, cx, -sx},
		{0, sx, cx},
	}
	ry := [3][3]float64{
		{cy, 0, sy},
		{0, 1, 0},
		{-sy, 0, cy},
	}
	rz := [3][3]float64{
		{cz, -sz, 0},
		{sz, cz, 0},
		{0, 0, 1},
	}

	rot := matMul3(rz, matMul3(ry, rx))
	applyRotation(x, rot, 0)
	if withNormals {
		applyRotation(x, rot, 3)
	}
}

// applyRotation multiplies the three columns starting at offset by the
// rotation matrix, treating each point as a row vector: v' = v · R.
// Rotation is a pure linear map; translation never reaches these columns.
func applyRotation(x *mat.Dense, rot [3][3]float64, offset int) {
	rows, _ := x.Dims()
	for i := 0; i < rows; i++ {
		v0 := x.At(i, offset)
		v1 := x.At(i, offset+1)
		v2 := x.At(i, offset+2)
		x.Set(i, offset, v0*rot[0][0]+v1*rot[1][0]+v2*rot[2][0])
		x.Set(i, offset+1, v0*rot[0][1]+v1*rot[1][1]+v2*rot[2][1])
		x.Set(i, offset+2, v0*rot[0][2]+v1*rot[1][2]+v2*rot[2][2])
	}
}

// matMul3 multiplies two 3×3 matrices.
func matMul3(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}
