package emblem

import "math"

// distFloor keeps the point-glow hyperbola finite on the shape itself.
const distFloor = 1e-6

// accumulate folds one primitive's glow into the running accumulator.
// Contributions are non-negative, so layers only ever brighten the field.
func accumulate(acc, d, power float64) float64 {
	return clamp01(acc + power/math.Max(d, distFloor))
}

func ringDist(p Vec2, r1, r2 float64) float64 {
	l := math.Hypot(p.X, p.Y)
	return math.Min(math.Abs(l-r1), math.Abs(l-r2))
}

// ringGlow draws only the edge lines. r1 == r2 gives a circle line; a zero
// radius collapses that to a point glow at the origin.
func ringGlow(acc float64, p Vec2, r1, r2, power float64) float64 {
	return accumulate(acc, ringDist(p, r1, r2), power)
}

// filledRingGlow adds the interior wash before the edge lines: strictly
// inside the annulus the accumulator is lifted by scale*r2/exp(d), which
// plateaus near r2 across the band and keeps the fold monotonic. scale is
// the layer's intensity times its stage visibility, so a fading layer's
// wash fades with its lines.
func filledRingGlow(acc float64, p Vec2, r1, r2, power, scale float64) float64 {
	l := math.Hypot(p.X, p.Y)
	d := math.Min(math.Abs(l-r1), math.Abs(l-r2))
	if l > r1 && l < r2 {
		acc = clamp01(acc + scale*r2/math.Exp(d))
	}
	return clamp01(acc + power/math.Max(d, distFloor))
}

// spokesDist is the distance to the nearest of count radial segments
// running from r1 to r2, one per 2*pi/count sector.
func spokesDist(p Vec2, r1, r2 float64, count int) float64 {
	step := 2 * math.Pi / float64(count)
	theta := math.Atan2(p.Y, p.X)
	s, c := math.Sincos(theta - snapToNearestMultiple(theta, step))
	r := math.Hypot(p.X, p.Y)
	along, lateral := r*c, math.Abs(r*s)
	switch {
	case along < r1:
		return math.Hypot(along-r1, lateral)
	case along > r2:
		return math.Hypot(along-r2, lateral)
	default:
		return lateral
	}
}

// squareOutlineDist is the distance to a square outline drawn at two nested
// half-extents. The callers pass equal extents, collapsing it to one line.
func squareOutlineDist(p Vec2, inner, outer float64) float64 {
	return math.Min(math.Abs(squareDist(p, inner)), math.Abs(squareDist(p, outer)))
}

// squareDist is the signed distance to an axis-aligned square of the given
// half-extent, negative inside.
func squareDist(p Vec2, half float64) float64 {
	qx := math.Abs(p.X) - half
	qy := math.Abs(p.Y) - half
	return math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) + math.Min(math.Max(qx, qy), 0)
}

// snapToNearestMultiple rounds angle to the nearest multiple of step.
// Ties round up: snap(0.5*step, step) == step.
func snapToNearestMultiple(angle, step float64) float64 {
	return math.Floor(angle/step+0.5) * step
}

func rotate(p Vec2, a float64) Vec2 {
	s, c := math.Sincos(a)
	return Vec2{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// smoothstep01 is the cubic ease 3t^2-2t^3 on a pre-clamped t.
func smoothstep01(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}
