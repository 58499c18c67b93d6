package main

import "testing"

func TestCheckCollision(t *testing.T) {
	// Overlapping circles
	if !CheckCollision(0, 0, 10, 15, 0, 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Touching circles
	if !CheckCollision(0, 0, 10, 20, 0, 10) {
		t.Error("circles should collide (touching)")
	}

	// Non-overlapping circles
	if CheckCollision(0, 0, 10, 25, 0, 10) {
		t.Error("circles should not collide")
	}

	// Same position
	if !CheckCollision(5, 5, 1, 5, 5, 1) {
		t.Error("same position should collide")
	}
}

func TestRectCircleOverlap(t *testing.T) {
	box := Rect{X: 100, Y: 100, W: 32, H: 24}

	// Center inside the box
	if !RectCircleOverlap(box, 110, 110, 1) {
		t.Error("circle inside box should overlap")
	}

	// Edge approach
	if !RectCircleOverlap(box, 95, 110, 6) {
		t.Error("circle crossing the left edge should overlap")
	}
	if RectCircleOverlap(box, 90, 110, 10) {
		t.Error("circle exactly touching the edge should not overlap")
	}

	// Diagonal off a corner: inside the bounding box, outside the circle
	if RectCircleOverlap(box, 93, 93, 9) {
		t.Error("corner gap should not overlap")
	}
	if !RectCircleOverlap(box, 95, 95, 8) {
		t.Error("circle over the corner should overlap")
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !RectOverlap(a, Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("boxes should overlap")
	}
	if RectOverlap(a, Rect{X: 10, Y: 0, W: 5, H: 5}) {
		t.Error("shared edge should not overlap")
	}
	if RectOverlap(a, Rect{X: 20, Y: 20, W: 5, H: 5}) {
		t.Error("separate boxes should not overlap")
	}
}
