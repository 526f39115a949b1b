package ebitenbackend

// vertex is one corner of a triangle after the vertex stage: clip-space
// position plus what the rasteriser interpolates.
type vertex struct {
	pos   [4]float64 // clip space
	color [4]float32
	uv    [2]float32
}

// nearDistance is how far v lies in front of the near plane (z = -w in
// clip space). Negative means behind.
func nearDistance(v vertex) float64 {
	return v.pos[2] + v.pos[3]
}

// intersectNearPlane returns the point where the edge a-b crosses the near
// plane. An edge lying in or parallel to the plane yields a.
func intersectNearPlane(a, b vertex) vertex {
	da, db := nearDistance(a), nearDistance(b)
	if da == db {
		return a
	}
	t := da / (da - db)

	var out vertex
	for i := range out.pos {
		out.pos[i] = a.pos[i] + (b.pos[i]-a.pos[i])*t
	}
	ft := float32(t)
	for i := range out.color {
		out.color[i] = a.color[i] + (b.color[i]-a.color[i])*ft
	}
	for i := range out.uv {
		out.uv[i] = a.uv[i] + (b.uv[i]-a.uv[i])*ft
	}
	return out
}

// clipPolygonAgainstNearPlane keeps the part of a convex polygon in front of
// the near plane. Points on the plane count as in front.
func clipPolygonAgainstNearPlane(poly []vertex) []vertex {
	if len(poly) == 0 {
		return nil
	}

	out := make([]vertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := nearDistance(prev) >= 0

	for _, cur := range poly {
		curIn := nearDistance(cur) >= 0
		switch {
		case curIn && !prevIn:
			out = append(out, intersectNearPlane(prev, cur), cur)
		case curIn:
			out = append(out, cur)
		case prevIn:
			out = append(out, intersectNearPlane(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}
