package core

import "testing"

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"negative width", Rect{X: 0, Y: 0, W: -1, H: 5}, true},
		{"zero height", Rect{X: 2, Y: 3, W: 4, H: 0}, true},
		{"normal", Rect{X: 0, Y: 0, W: 1, H: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}

	if !r.Contains(2, 3) {
		t.Error("top-left corner should be contained")
	}
	if !r.Contains(5, 7) {
		t.Error("bottom-right interior cell should be contained")
	}
	if r.Contains(6, 3) {
		t.Error("x == X+W should be outside")
	}
	if r.Contains(2, 8) {
		t.Error("y == Y+H should be outside")
	}
	if r.Contains(1, 3) {
		t.Error("left of rect should be outside")
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{0, 0, 5, 5}, Rect{0, 0, 5, 5}, true},
		{"partial", Rect{0, 0, 5, 5}, Rect{3, 3, 5, 5}, true},
		{"touching edges", Rect{0, 0, 5, 5}, Rect{5, 0, 5, 5}, false},
		{"disjoint", Rect{0, 0, 5, 5}, Rect{10, 10, 2, 2}, false},
		{"empty operand", Rect{0, 0, 5, 5}, Rect{2, 2, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}

	c := Rect{X: 20, Y: 20, W: 3, H: 3}
	if !a.Intersect(c).Empty() {
		t.Errorf("disjoint Intersect() should be empty, got %+v", a.Intersect(c))
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 5, Y: 5, W: 2, H: 2}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, W: 7, H: 7}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}

	if got := a.Union(Rect{}); got != a {
		t.Errorf("union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty union rect = %+v, want %+v", got, b)
	}
}

func TestRectTouchesOrOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", Rect{0, 0, 5, 5}, Rect{3, 3, 5, 5}, true},
		{"edge adjacent horizontal", Rect{0, 0, 5, 5}, Rect{5, 0, 5, 5}, true},
		{"edge adjacent vertical", Rect{0, 0, 5, 5}, Rect{0, 5, 5, 5}, true},
		{"corner adjacent", Rect{0, 0, 5, 5}, Rect{5, 5, 5, 5}, true},
		{"one cell gap", Rect{0, 0, 5, 5}, Rect{6, 0, 5, 5}, false},
		{"far apart", Rect{0, 0, 2, 2}, Rect{10, 10, 2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.touchesOrOverlaps(tt.b); got != tt.want {
				t.Errorf("touchesOrOverlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeRects(t *testing.T) {
	t.Run("merges overlapping into union", func(t *testing.T) {
		in := []Rect{{0, 0, 5, 5}, {3, 3, 5, 5}}
		out := mergeRects(in)
		if len(out) != 1 {
			t.Fatalf("len(out) = %d, want 1", len(out))
		}
		want := Rect{0, 0, 8, 8}
		if out[0] != want {
			t.Errorf("merged = %+v, want %+v", out[0], want)
		}
	})

	t.Run("keeps disjoint separate", func(t *testing.T) {
		in := []Rect{{0, 0, 2, 2}, {10, 10, 2, 2}}
		out := mergeRects(in)
		if len(out) != 2 {
			t.Errorf("len(out) = %d, want 2", len(out))
		}
	})

	t.Run("drops empty rects", func(t *testing.T) {
		in := []Rect{{0, 0, 0, 0}, {1, 1, 2, 2}}
		out := mergeRects(in)
		if len(out) != 1 {
			t.Errorf("len(out) = %d, want 1", len(out))
		}
	})

	t.Run("chain merge collapses transitively", func(t *testing.T) {
		in := []Rect{{0, 0, 2, 2}, {4, 0, 2, 2}, {2, 0, 2, 2}}
		out := mergeRects(in)
		if len(out) != 1 {
			t.Fatalf("len(out) = %d, want 1", len(out))
		}
		want := Rect{0, 0, 6, 2}
		if out[0] != want {
			t.Errorf("merged = %+v, want %+v", out[0], want)
		}
	})
}
