package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/transformable"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Item is a transformable element with a rectangular body of Width×Height
// in local coordinates. Its position, rotation and scale come from the
// element's TransformState; the pivot is the local point they are applied
// around.
type Item struct {
	*transformable.Element

	// Image is drawn by Host.Draw when set.
	Image *ebiten.Image

	Width, Height  float64
	PivotX, PivotY float64
}

// NewItem wraps e with a body of w×h pivoting around its center.
func NewItem(e *transformable.Element, w, h float64) *Item {
	return &Item{Element: e, Width: w, Height: h, PivotX: w / 2, PivotY: h / 2}
}

// localTransform computes the item's affine matrix from the element state.
// Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func localTransform(it *Item) [6]float64 {
	s := it.State()
	sin, cos := math.Sincos(s.Rotation * math.Pi / 180)

	a := s.ScaleX
	d := s.ScaleY
	preTx := -it.PivotX * a
	preTy := -it.PivotY * d

	return [6]float64{
		cos * a,
		sin * a,
		-sin * d,
		cos * d,
		cos*preTx - sin*preTy + s.X,
		sin*preTx + cos*preTy + s.Y,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// GeoM returns the draw matrix for the item's current state.
func (it *Item) GeoM() ebiten.GeoM {
	m := localTransform(it)
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// ScreenToLocal converts a screen point into the item's local space.
func (it *Item) ScreenToLocal(x, y float64) (lx, ly float64) {
	return transformPoint(invertAffine(localTransform(it)), x, y)
}

// LocalToScreen converts a local point into screen space.
func (it *Item) LocalToScreen(lx, ly float64) (x, y float64) {
	return transformPoint(localTransform(it), lx, ly)
}

// Contains reports whether the screen point (x, y) lies on the item body.
func (it *Item) Contains(x, y float64) bool {
	if it.State().ScaleX == 0 || it.State().ScaleY == 0 {
		return false
	}
	lx, ly := it.ScreenToLocal(x, y)
	return lx >= 0 && lx <= it.Width && ly >= 0 && ly <= it.Height
}
