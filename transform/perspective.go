// Package transform maps module coordinates of a symbol to pixel
// coordinates of the image it was found in.
package transform

// Point is a position in module or pixel space.
type Point struct {
	X, Y float64
}

// Quad lists the corners of a quadrilateral clockwise from the top left.
type Quad [4]Point

// Perspective is a projective transform of the plane, stored as a 3x3
// matrix applied to row vectors (x, y, 1).
type Perspective struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// QuadToQuad returns the transform that carries each corner of from onto
// the matching corner of to.
func QuadToQuad(from, to Quad) *Perspective {
	return SquareToQuad(to).Times(QuadToSquare(from))
}

// SquareToQuad maps the unit square (0,0), (1,0), (1,1), (0,1) onto q.
func SquareToQuad(q Quad) *Perspective {
	p0, p1, p2, p3 := q[0], q[1], q[2], q[3]
	dx3 := p0.X - p1.X + p2.X - p3.X
	dy3 := p0.Y - p1.Y + p2.Y - p3.Y
	if dx3 == 0 && dy3 == 0 {
		// parallelogram
		return &Perspective{
			a11: p1.X - p0.X, a21: p2.X - p1.X, a31: p0.X,
			a12: p1.Y - p0.Y, a22: p2.Y - p1.Y, a32: p0.Y,
			a33: 1,
		}
	}
	dx1, dx2 := p1.X-p2.X, p3.X-p2.X
	dy1, dy2 := p1.Y-p2.Y, p3.Y-p2.Y
	det := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / det
	a23 := (dx1*dy3 - dx3*dy1) / det
	return &Perspective{
		a11: p1.X - p0.X + a13*p1.X, a21: p3.X - p0.X + a23*p3.X, a31: p0.X,
		a12: p1.Y - p0.Y + a13*p1.Y, a22: p3.Y - p0.Y + a23*p3.Y, a32: p0.Y,
		a13: a13, a23: a23, a33: 1,
	}
}

// QuadToSquare is the inverse of SquareToQuad, up to scale.
func QuadToSquare(q Quad) *Perspective {
	return SquareToQuad(q).adjoint()
}

func (t *Perspective) adjoint() *Perspective {
	return &Perspective{
		a11: t.a22*t.a33 - t.a23*t.a32,
		a21: t.a23*t.a31 - t.a21*t.a33,
		a31: t.a21*t.a32 - t.a22*t.a31,
		a12: t.a13*t.a32 - t.a12*t.a33,
		a22: t.a11*t.a33 - t.a13*t.a31,
		a32: t.a12*t.a31 - t.a11*t.a32,
		a13: t.a12*t.a23 - t.a13*t.a22,
		a23: t.a13*t.a21 - t.a11*t.a23,
		a33: t.a11*t.a22 - t.a12*t.a21,
	}
}

// Times composes the transforms: other is applied first, then t.
func (t *Perspective) Times(other *Perspective) *Perspective {
	return &Perspective{
		a11: t.a11*other.a11 + t.a21*other.a12 + t.a31*other.a13,
		a21: t.a11*other.a21 + t.a21*other.a22 + t.a31*other.a23,
		a31: t.a11*other.a31 + t.a21*other.a32 + t.a31*other.a33,
		a12: t.a12*other.a11 + t.a22*other.a12 + t.a32*other.a13,
		a22: t.a12*other.a21 + t.a22*other.a22 + t.a32*other.a23,
		a32: t.a12*other.a31 + t.a22*other.a32 + t.a32*other.a33,
		a13: t.a13*other.a11 + t.a23*other.a12 + t.a33*other.a13,
		a23: t.a13*other.a21 + t.a23*other.a22 + t.a33*other.a23,
		a33: t.a13*other.a31 + t.a23*other.a32 + t.a33*other.a33,
	}
}

// Apply maps p.
func (t *Perspective) Apply(p Point) Point {
	d := t.a13*p.X + t.a23*p.Y + t.a33
	return Point{
		X: (t.a11*p.X + t.a21*p.Y + t.a31) / d,
		Y: (t.a12*p.X + t.a22*p.Y + t.a32) / d,
	}
}
