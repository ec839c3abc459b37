package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 4, 20, 15)
	if r.Right() != 30 || r.Bottom() != 19 {
		t.Errorf("edges of %+v = %d, %d", r, r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionShift.String() != "ParadigmShift" {
		t.Errorf("ActionShift.String() = %q", ActionShift.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUndo) {
		t.Error("zero frame should be empty")
	}
	f.Set(ActionUndo)
	if !f.Has(ActionUndo) {
		t.Error("Set did not register action")
	}
	f.Clear()
	if f.Has(ActionUndo) {
		t.Error("Clear did not reset action")
	}
}
