// Package geom provides the 2D computational geometry kernel for the fold
// engine: point/line classification, segment-line intersection, polygon
// splitting, area and centroid. It contains no external dependencies to keep
// the math pure and testable.
//
// All functions tolerate degenerate input and return empty or zero results
// instead of failing; callers decide the fallback behavior.
package geom

import "math"

// Epsilon is the tolerance used for all floating-point comparisons.
// Polygons with area below Epsilon are considered degenerate.
const Epsilon = 1e-4

// Vec2 is a 2D point or direction vector.
type Vec2 struct {
	X, Y float64
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a scaled by s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the Euclidean length of a.
func (a Vec2) Length() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// Normalized returns a unit-length copy of a, or the zero vector if a is
// shorter than Epsilon.
func (a Vec2) Normalized() Vec2 {
	l := a.Length()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// DistanceTo returns the distance between a and b.
func (a Vec2) DistanceTo(b Vec2) float64 {
	return a.Sub(b).Length()
}

// ApproxEqual reports whether a and b coincide within Epsilon.
func (a Vec2) ApproxEqual(b Vec2) bool {
	return math.Abs(a.X-b.X) < Epsilon && math.Abs(a.Y-b.Y) < Epsilon
}

// SideOfLine classifies a point against the infinite line through linePoint
// with the given normal. Returns +1 on the normal side, -1 on the opposite
// side, and 0 when the point lies on the line within Epsilon.
func SideOfLine(p, linePoint, normal Vec2) int {
	d := p.Sub(linePoint).Dot(normal)
	if math.Abs(d) < Epsilon {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}

// SignedDistance returns the signed distance from p to the line through
// linePoint with the given unit normal.
func SignedDistance(p, linePoint, normal Vec2) float64 {
	return p.Sub(linePoint).Dot(normal)
}

// SegmentLineIntersection intersects the segment a-b with the infinite line
// through linePoint with the given normal. Segments parallel to the line
// within Epsilon report no intersection.
func SegmentLineIntersection(a, b, linePoint, normal Vec2) (Vec2, bool) {
	dir := b.Sub(a)
	den := dir.Dot(normal)
	if math.Abs(den) < Epsilon {
		return Vec2{}, false
	}
	t := linePoint.Sub(a).Dot(normal) / den
	if t < -Epsilon || t > 1.0+Epsilon {
		return Vec2{}, false
	}
	t = math.Max(0, math.Min(1, t))
	return a.Add(dir.Scale(t)), true
}

// SplitResult holds the two halves produced by SplitByLine. Pos contains the
// vertices on the normal side of the line, Neg the vertices on the opposite
// side. Vertices exactly on the line appear in both halves.
type SplitResult struct {
	Pos           []Vec2
	Neg           []Vec2
	Intersections []Vec2
}

// SplitByLine splits a polygon by an infinite line using half-plane
// (Sutherland-Hodgman) clipping. A polygon entirely on one side yields an
// empty other side and no intersections; a true crossing yields exactly two
// intersection points.
func SplitByLine(poly []Vec2, linePoint, normal Vec2) SplitResult {
	var res SplitResult
	n := len(poly)
	if n < 3 {
		return res
	}

	for i := range n {
		cur := poly[i]
		next := poly[(i+1)%n]

		curSide := SideOfLine(cur, linePoint, normal)
		nextSide := SideOfLine(next, linePoint, normal)

		if curSide >= 0 {
			res.Pos = append(res.Pos, cur)
		}
		if curSide <= 0 {
			res.Neg = append(res.Neg, cur)
		}

		if curSide*nextSide < 0 {
			if ip, ok := SegmentLineIntersection(cur, next, linePoint, normal); ok {
				res.Intersections = append(res.Intersections, ip)
				res.Pos = append(res.Pos, ip)
				res.Neg = append(res.Neg, ip)
			}
		}
	}
	return res
}

// Area returns the absolute polygon area via the shoelace formula.
// Polygons with fewer than 3 vertices have zero area.
func Area(poly []Vec2) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	n := len(poly)
	for i := range n {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the polygon centroid. For polygons whose signed area is
// within Epsilon of zero it falls back to the unweighted vertex average.
func Centroid(poly []Vec2) Vec2 {
	n := len(poly)
	switch n {
	case 0:
		return Vec2{}
	case 1:
		return poly[0]
	case 2:
		return poly[0].Add(poly[1]).Scale(0.5)
	}

	var c Vec2
	area := 0.0
	for i := range n {
		j := (i + 1) % n
		cross := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		area += cross
		c = c.Add(poly[i].Add(poly[j]).Scale(cross))
	}
	area *= 0.5

	if math.Abs(area) < Epsilon {
		var avg Vec2
		for _, v := range poly {
			avg = avg.Add(v)
		}
		return avg.Scale(1 / float64(n))
	}
	return c.Scale(1 / (6 * area))
}

// Translate returns a copy of the polygon moved by delta.
func Translate(poly []Vec2, delta Vec2) []Vec2 {
	out := make([]Vec2, len(poly))
	for i, v := range poly {
		out[i] = v.Add(delta)
	}
	return out
}

// IsValidPolygon reports whether the polygon is simple: at least three
// vertices, no duplicate consecutive vertices, and no self-intersecting
// edge pairs.
func IsValidPolygon(poly []Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	for i := range n {
		if poly[i].ApproxEqual(poly[(i+1)%n]) {
			return false
		}
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (they share a vertex).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsCross(poly[i], poly[(i+1)%n], poly[j], poly[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// Congruent reports whether two polygons describe the same shape: equal
// vertex counts and a cyclic rotation (in either winding direction) under
// which all vertices coincide within Epsilon.
func Congruent(a, b []Vec2) bool {
	n := len(a)
	if n != len(b) || n == 0 {
		return false
	}
	for offset := range n {
		if matchCyclic(a, b, offset, 1) || matchCyclic(a, b, offset, -1) {
			return true
		}
	}
	return false
}

func matchCyclic(a, b []Vec2, offset, step int) bool {
	n := len(a)
	for i := range n {
		j := ((offset+i*step)%n + n) % n
		if !a[i].ApproxEqual(b[j]) {
			return false
		}
	}
	return true
}

// segmentsCross reports whether segments a1-a2 and b1-b2 properly intersect
// (crossing at an interior point of both).
func segmentsCross(a1, a2, b1, b2 Vec2) bool {
	d1 := cross(b2.Sub(b1), a1.Sub(b1))
	d2 := cross(b2.Sub(b1), a2.Sub(b1))
	d3 := cross(a2.Sub(a1), b1.Sub(a1))
	d4 := cross(a2.Sub(a1), b2.Sub(a1))
	return ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon))
}

func cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
