package quill

// Matrix is a 2D affine transform.
//
//	Layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine transform. The zero Matrix is NOT
// identity; use this (or Matrix.OrIdentity) for "no transform".
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Translate returns a pure translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix
}

// IsZero reports whether m is the zero value (an unset transform).
func (m Matrix) IsZero() bool {
	return m == Matrix{}
}

// OrIdentity returns m, or the identity matrix when m is the zero value.
// An unset transform is always treated as identity, never as a fault.
func (m Matrix) OrIdentity() Matrix {
	if m.IsZero() {
		return IdentityMatrix
	}
	return m
}

// Mul returns the product m * o (o applied first, then m).
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m. Returns the identity matrix if m is
// singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point p by m.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Translation returns the translation component (tx, ty) of m.
func (m Matrix) Translation() Vec2 {
	return Vec2{m[4], m[5]}
}

// Linear returns m with its translation component zeroed: the rotation,
// scale, and skew part only.
func (m Matrix) Linear() Matrix {
	return Matrix{m[0], m[1], m[2], m[3], 0, 0}
}

// transformBounds returns the axis-aligned bounding box of r after applying m.
func transformBounds(m Matrix, r Rect) Rect {
	corners := [4]Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
	p := m.Apply(corners[0])
	minX, minY := p.X, p.Y
	maxX, maxY := p.X, p.Y
	for _, c := range corners[1:] {
		p = m.Apply(c)
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
