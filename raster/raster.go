/*
Package raster converts lines, rectangle outlines, ellipse outlines and flood
fills into the grid cells that approximate them.

Every function is pure: the same inputs always produce the same cells in the
same order. Cells may fall outside any particular grid, callers are expected
to ignore those. Shapes can list a cell more than once where their pieces
meet.
*/
package raster

import "image"

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

// Line returns the cells of the Bresenham line from one point to another,
// both ends included.
func Line(from, to image.Point) []image.Point {
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := sign(from.X, to.X), sign(from.Y, to.Y)

	points := make([]image.Point, 0, max(dx, -dy)+1)

	err := dx + dy
	for p := from; ; {
		points = append(points, p)
		if p == to {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}

	return points
}

// Rectangle returns the outline of the axis-aligned rectangle with opposite
// corners from and to, drawn as the top, right, bottom and left edges in
// that order.
func Rectangle(from, to image.Point) []image.Point {
	corners := [4]image.Point{
		from,
		{to.X, from.Y},
		to,
		{from.X, to.Y},
	}

	var points []image.Point
	for i := range corners {
		points = append(points, Line(corners[i], corners[(i+1)%len(corners)])...)
	}
	return points
}

// Ellipse returns the outline of the ellipse centred on center with the
// horizontal and vertical radii in radii, traced with the two region
// midpoint algorithm. It returns nil unless both radii are positive.
func Ellipse(center, radii image.Point) []image.Point {
	if radii.X <= 0 || radii.Y <= 0 {
		return nil
	}

	rx2 := float64(radii.X * radii.X)
	ry2 := float64(radii.Y * radii.Y)

	var points []image.Point
	plot := func(x, y int) {
		points = append(points,
			image.Pt(center.X+x, center.Y+y),
			image.Pt(center.X-x, center.Y+y),
			image.Pt(center.X+x, center.Y-y),
			image.Pt(center.X-x, center.Y-y),
		)
	}

	x, y := 0, radii.Y
	dx, dy := 0.0, 2*rx2*float64(y)

	// Region 1, slope shallower than -1
	pk := ry2 - rx2*float64(radii.Y) + 0.25*rx2
	for dx < dy {
		plot(x, y)
		x++
		dx += 2 * ry2
		if pk < 0 {
			pk += dx + ry2
		} else {
			y--
			dy -= 2 * rx2
			pk += dx - dy + ry2
		}
	}

	// Region 2
	fx, fy := float64(x)+0.5, float64(y-1)
	pk = ry2*fx*fx + rx2*fy*fy - rx2*ry2
	for y >= 0 {
		plot(x, y)
		y--
		dy -= 2 * rx2
		if pk > 0 {
			pk += rx2 - dy
		} else {
			x++
			dx += 2 * ry2
			pk += dx - dy + rx2
		}
	}

	return points
}

// EllipseInRect returns the outline of the ellipse inscribed in the box with
// opposite corners from and to. The centre is the midpoint of the box and
// the radii are half its extents, rounded to the nearest cell.
func EllipseInRect(from, to image.Point) []image.Point {
	r := image.Rectangle{from, to}.Canon()
	center := image.Pt((r.Min.X+r.Max.X+1)/2, (r.Min.Y+r.Max.Y+1)/2)
	radii := image.Pt((r.Dx()+1)/2, (r.Dy()+1)/2)
	return Ellipse(center, radii)
}

// Fill returns the 4-connected region of cells that are off, starting from
// start, on a size by size grid. on reports whether a cell is set. Nothing
// is returned if start is outside the grid or already on.
func Fill(size int, start image.Point, on func(x, y int) bool) []image.Point {
	in := func(p image.Point) bool {
		return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
	}

	if !in(start) || on(start.X, start.Y) {
		return nil
	}

	visited := make([]bool, size*size)
	stack := []image.Point{start}

	var points []image.Point
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := p.Y*size + p.X
		if visited[i] {
			continue
		}
		visited[i] = true
		points = append(points, p)

		for _, n := range [4]image.Point{
			{p.X + 1, p.Y},
			{p.X - 1, p.Y},
			{p.X, p.Y + 1},
			{p.X, p.Y - 1},
		} {
			if in(n) && !visited[n.Y*size+n.X] && !on(n.X, n.Y) {
				stack = append(stack, n)
			}
		}
	}

	return points
}
