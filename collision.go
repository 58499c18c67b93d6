package main

// Rect is an axis-aligned box with its origin at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// CheckCollision checks if two circles overlap (touching counts)
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// RectCircleOverlap clamps the circle center to the box and compares the
// distance to that nearest point against the radius
func RectCircleOverlap(r Rect, cx, cy, radius float64) bool {
	nx := Clamp(cx, r.X, r.X+r.W)
	ny := Clamp(cy, r.Y, r.Y+r.H)
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy < radius*radius
}

// RectOverlap checks two boxes for overlap (shared edges do not count)
func RectOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
