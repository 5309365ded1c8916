package geo

import (
	"gonum.org/v1/gonum/mat"
)

type Point struct {
	X float64
	Y float64
}

func NewPoint(x float64, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min    Point
	Width  float64
	Height float64
}

func NewRect(x float64, y float64, width float64, height float64) Rect {
	return Rect{
		Min:    NewPoint(x, y),
		Width:  width,
		Height: height,
	}
}

func (r Rect) Max() Point {
	return NewPoint(r.Min.X+r.Width, r.Min.Y+r.Height)
}

func (r Rect) Center() Point {
	min := mat.NewVecDense(2, []float64{r.Min.X, r.Min.Y})
	half := mat.NewVecDense(2, []float64{r.Width / 2, r.Height / 2})

	var center mat.VecDense
	center.AddVec(min, half)

	return NewPoint(center.AtVec(0), center.AtVec(1))
}

// Translate returns a copy of the rectangle moved by (dx, dy).
func (r Rect) Translate(dx float64, dy float64) Rect {
	min := mat.NewVecDense(2, []float64{r.Min.X, r.Min.Y})
	delta := mat.NewVecDense(2, []float64{dx, dy})

	var moved mat.VecDense
	moved.AddVec(min, delta)

	return Rect{
		Min:    NewPoint(moved.AtVec(0), moved.AtVec(1)),
		Width:  r.Width,
		Height: r.Height,
	}
}

// Intersects reports whether the two rectangles overlap. Edges touching
// counts as an intersection (closed-interval test).
func (r Rect) Intersects(other Rect) bool {
	if r.Min.X > other.Max().X || other.Min.X > r.Max().X {
		return false
	}
	if r.Min.Y > other.Max().Y || other.Min.Y > r.Max().Y {
		return false
	}
	return true
}

// Contains reports whether the point lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max().X &&
		p.Y >= r.Min.Y && p.Y <= r.Max().Y
}
