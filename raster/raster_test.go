package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func distinct(points []image.Point) map[image.Point]struct{} {
	m := make(map[image.Point]struct{}, len(points))
	for _, p := range points {
		m[p] = struct{}{}
	}
	return m
}

func TestLine(t *testing.T) {
	tables := []struct {
		name     string
		from, to image.Point
		want     []image.Point
	}{
		{
			"single",
			image.Pt(0, 0), image.Pt(0, 0),
			[]image.Point{{0, 0}},
		},
		{
			"horizontal",
			image.Pt(1, 2), image.Pt(4, 2),
			[]image.Point{{1, 2}, {2, 2}, {3, 2}, {4, 2}},
		},
		{
			"vertical reversed",
			image.Pt(3, 3), image.Pt(3, 0),
			[]image.Point{{3, 3}, {3, 2}, {3, 1}, {3, 0}},
		},
		{
			"diagonal",
			image.Pt(0, 0), image.Pt(3, 3),
			[]image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			"shallow",
			image.Pt(0, 0), image.Pt(4, 2),
			[]image.Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}},
		},
		{
			"steep backwards",
			image.Pt(2, 4), image.Pt(0, 0),
			[]image.Point{{2, 4}, {1, 3}, {1, 2}, {0, 1}, {0, 0}},
		},
		{
			"outside",
			image.Pt(-2, 0), image.Pt(0, 0),
			[]image.Point{{-2, 0}, {-1, 0}, {0, 0}},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, Line(table.from, table.to))
		})
	}
}

func TestLineIsRestartable(t *testing.T) {
	a, b := image.Pt(1, 7), image.Pt(6, 2)
	assert.Equal(t, Line(a, b), Line(a, b))
}

func TestRectangle(t *testing.T) {
	points := Rectangle(image.Pt(1, 1), image.Pt(4, 4))
	assert.Len(t, points, 16)

	cells := distinct(points)
	assert.Len(t, cells, 12)
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			_, ok := cells[image.Pt(x, y)]
			border := x == 1 || x == 4 || y == 1 || y == 4
			assert.Equal(t, border, ok, "cell (%d, %d)", x, y)
		}
	}

	// Edges run top, right, bottom, left
	assert.Equal(t, []image.Point{{1, 1}, {2, 1}, {3, 1}, {4, 1}}, points[:4])
	assert.Equal(t, []image.Point{{4, 1}, {4, 2}, {4, 3}, {4, 4}}, points[4:8])
	assert.Equal(t, []image.Point{{4, 4}, {3, 4}, {2, 4}, {1, 4}}, points[8:12])
	assert.Equal(t, []image.Point{{1, 4}, {1, 3}, {1, 2}, {1, 1}}, points[12:])
}

func TestRectangleAnyCorners(t *testing.T) {
	assert.Equal(t,
		distinct(Rectangle(image.Pt(1, 1), image.Pt(4, 4))),
		distinct(Rectangle(image.Pt(4, 1), image.Pt(1, 4))),
	)
	assert.Len(t, distinct(Rectangle(image.Pt(2, 2), image.Pt(2, 2))), 1)
}

func TestEllipse(t *testing.T) {
	assert.Equal(t, []image.Point{
		{0, 1}, {0, 1}, {0, -1}, {0, -1},
		{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
		{2, 0}, {-2, 0}, {2, 0}, {-2, 0},
	}, Ellipse(image.Pt(0, 0), image.Pt(2, 1)))

	cells := distinct(Ellipse(image.Pt(8, 8), image.Pt(5, 3)))
	want := distinct([]image.Point{
		{3, 7}, {3, 8}, {3, 9}, {4, 6}, {4, 10}, {5, 6}, {5, 10},
		{6, 5}, {6, 11}, {7, 5}, {7, 11}, {8, 5}, {8, 11}, {9, 5},
		{9, 11}, {10, 5}, {10, 11}, {11, 6}, {11, 10}, {12, 6},
		{12, 10}, {13, 7}, {13, 8}, {13, 9},
	})
	assert.Equal(t, want, cells)
}

func TestEllipseCircle(t *testing.T) {
	cells := distinct(Ellipse(image.Pt(3, 3), image.Pt(3, 3)))
	want := distinct([]image.Point{
		{0, 2}, {0, 3}, {0, 4}, {1, 1}, {1, 5}, {2, 0}, {2, 6}, {3, 0},
		{3, 6}, {4, 0}, {4, 6}, {5, 1}, {5, 5}, {6, 2}, {6, 3}, {6, 4},
	})
	assert.Equal(t, want, cells)
}

func TestEllipseDegenerate(t *testing.T) {
	assert.Nil(t, Ellipse(image.Pt(4, 4), image.Pt(0, 3)))
	assert.Nil(t, Ellipse(image.Pt(4, 4), image.Pt(3, 0)))
	assert.Nil(t, Ellipse(image.Pt(4, 4), image.Pt(-1, 2)))
}

func TestEllipseInRect(t *testing.T) {
	assert.Equal(t,
		Ellipse(image.Pt(3, 3), image.Pt(3, 3)),
		EllipseInRect(image.Pt(0, 0), image.Pt(6, 6)),
	)
	assert.Equal(t,
		EllipseInRect(image.Pt(0, 0), image.Pt(6, 6)),
		EllipseInRect(image.Pt(6, 6), image.Pt(0, 0)),
	)
	assert.Nil(t, EllipseInRect(image.Pt(2, 2), image.Pt(2, 7)))
}

func TestFillOpen(t *testing.T) {
	points := Fill(8, image.Pt(0, 0), func(int, int) bool { return false })
	assert.Len(t, points, 64)
	assert.Len(t, distinct(points), 64)
	assert.Equal(t, image.Pt(0, 0), points[0])
}

func TestFillBounded(t *testing.T) {
	border := distinct(Rectangle(image.Pt(1, 1), image.Pt(5, 5)))
	on := func(x, y int) bool {
		_, ok := border[image.Pt(x, y)]
		return ok
	}

	inside := distinct(Fill(8, image.Pt(3, 3), on))
	assert.Len(t, inside, 9)
	for p := range inside {
		assert.True(t, p.In(image.Rect(2, 2, 5, 5)), "%v", p)
	}

	outside := Fill(8, image.Pt(0, 0), on)
	assert.Len(t, outside, 64-25)
	for _, p := range outside {
		assert.False(t, p.In(image.Rect(1, 1, 6, 6)), "%v", p)
	}
}

func TestFillNoop(t *testing.T) {
	on := func(x, y int) bool { return x == 2 && y == 2 }

	assert.Nil(t, Fill(8, image.Pt(2, 2), on))
	assert.Nil(t, Fill(8, image.Pt(-1, 0), on))
	assert.Nil(t, Fill(8, image.Pt(0, 8), on))
}

func TestFillNoDiagonalLeak(t *testing.T) {
	// A diagonal wall separates the two triangles
	on := func(x, y int) bool { return x == y }

	points := Fill(4, image.Pt(3, 0), on)
	assert.Len(t, points, 6)
	for _, p := range points {
		assert.Greater(t, p.X, p.Y)
	}
}
