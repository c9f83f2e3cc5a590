package emblem

import (
	"fmt"
	"math"
)

// Geometry is the closed set of layer shapes. Variants are plain value
// structs; only types in this package can satisfy the interface.
type Geometry interface {
	validate() error
	offset() float64
	glow(acc float64, p Vec2, scale float64, ev evalEnv) float64
}

// thicknessFloor rejects degenerate line powers that would explode the
// accumulator at the distance floor.
const thicknessFloor = 1e-5

// RingGeometry is an annulus with crisp edge lines and a soft interior wash
// between the two radii.
type RingGeometry struct {
	Inner, Outer   float64
	Thickness      float64
	RotationOffset float64
}

func (g RingGeometry) offset() float64 { return g.RotationOffset }

func (g RingGeometry) validate() error {
	if g.Inner < 0 || g.Outer < 0 {
		return fmt.Errorf("ring: negative radius (inner %g, outer %g)", g.Inner, g.Outer)
	}
	if g.Outer < g.Inner {
		return fmt.Errorf("ring: outer %g below inner %g", g.Outer, g.Inner)
	}
	return checkThickness("ring", g.Thickness)
}

func (g RingGeometry) glow(acc float64, p Vec2, scale float64, _ evalEnv) float64 {
	return filledRingGlow(acc, p, g.Inner, g.Outer, g.Thickness*scale, scale)
}

// SpokesGeometry is a radial array of line segments between two radii.
type SpokesGeometry struct {
	Inner, Outer   float64
	Count          int
	Thickness      float64
	RotationOffset float64
}

func (g SpokesGeometry) offset() float64 { return g.RotationOffset }

func (g SpokesGeometry) validate() error {
	if g.Inner < 0 || g.Outer < 0 {
		return fmt.Errorf("spokes: negative radius (inner %g, outer %g)", g.Inner, g.Outer)
	}
	if g.Outer < g.Inner {
		return fmt.Errorf("spokes: outer %g below inner %g", g.Outer, g.Inner)
	}
	if g.Count < 3 {
		return fmt.Errorf("spokes: count %d below 3", g.Count)
	}
	return checkThickness("spokes", g.Thickness)
}

func (g SpokesGeometry) glow(acc float64, p Vec2, scale float64, _ evalEnv) float64 {
	return accumulate(acc, spokesDist(p, g.Inner, g.Outer, g.Count), g.Thickness*scale)
}

// PolygonOutlineGeometry overlays Count square outlines of half-extent Size,
// each rotated pi/Count from the previous. Count 6 with snapping yields the
// hexagram figure; count 3 the inner triangle star.
type PolygonOutlineGeometry struct {
	Count          int
	Size           float64
	Thickness      float64
	RotationOffset float64
	SnapRotation   bool
}

func (g PolygonOutlineGeometry) offset() float64 { return g.RotationOffset }

func (g PolygonOutlineGeometry) validate() error {
	if g.Count < 3 {
		return fmt.Errorf("polygon outline: count %d below 3", g.Count)
	}
	if g.Size <= 0 {
		return fmt.Errorf("polygon outline: size %g not positive", g.Size)
	}
	return checkThickness("polygon outline", g.Thickness)
}

func (g PolygonOutlineGeometry) glow(acc float64, p Vec2, scale float64, _ evalEnv) float64 {
	step := math.Pi / float64(g.Count)
	q := p
	if g.SnapRotation {
		theta := math.Atan2(p.Y, p.X)
		q = rotate(p, -snapToNearestMultiple(theta, step))
	}
	power := g.Thickness * scale
	for i := 0; i < g.Count; i++ {
		acc = accumulate(acc, squareOutlineDist(q, g.Size, g.Size), power)
		q = rotate(q, step)
	}
	return acc
}

// DotRingGeometry places Count dots around an orbit, offset half a sector
// from angle zero. Each dot is a wide dim halo ring plus a zero-width bright
// dot, both accumulated separately.
type DotRingGeometry struct {
	Count          int
	OrbitRadius    float64
	RingInner      float64
	RingOuter      float64
	RingThickness  float64
	DotRadius      float64
	DotThickness   float64
	RotationOffset float64
}

func (g DotRingGeometry) offset() float64 { return g.RotationOffset }

func (g DotRingGeometry) validate() error {
	if g.Count < 4 {
		return fmt.Errorf("dot ring: count %d below 4", g.Count)
	}
	if g.OrbitRadius < 0 || g.RingInner < 0 || g.RingOuter < 0 || g.DotRadius < 0 {
		return fmt.Errorf("dot ring: negative radius")
	}
	if g.RingOuter < g.RingInner {
		return fmt.Errorf("dot ring: halo outer %g below inner %g", g.RingOuter, g.RingInner)
	}
	if err := checkThickness("dot ring halo", g.RingThickness); err != nil {
		return err
	}
	return checkThickness("dot ring dot", g.DotThickness)
}

func (g DotRingGeometry) glow(acc float64, p Vec2, scale float64, _ evalEnv) float64 {
	step := 2 * math.Pi / float64(g.Count)
	for i := 0; i < g.Count; i++ {
		a := (float64(i) + 0.5) * step
		s, c := math.Sincos(a)
		d := Vec2{p.X - g.OrbitRadius*c, p.Y - g.OrbitRadius*s}
		acc = ringGlow(acc, d, g.RingInner, g.RingOuter, g.RingThickness*scale)
		acc = ringGlow(acc, d, g.DotRadius, g.DotRadius, g.DotThickness*scale)
	}
	return acc
}

// OrbitalClusterGeometry is the spinning core: a chain of point glows laid
// out by repeated translate/evaluate/rotate steps, a center dot, and a local
// breathing pulse on top of the global one.
type OrbitalClusterGeometry struct {
	BreathAmplitude      float64
	BreathCenter         float64
	OrbitalCount         int
	StartRadius          float64
	RadiusStep           float64
	OrbitalDistance      float64
	OrbitalThickness     float64
	OrbitalRotationSpeed float64
	CenterRadius         float64
	CenterThickness      float64
	RotationOffset       float64
}

func (g OrbitalClusterGeometry) offset() float64 { return g.RotationOffset }

func (g OrbitalClusterGeometry) validate() error {
	if g.OrbitalCount < 1 {
		return fmt.Errorf("orbital cluster: count %d below 1", g.OrbitalCount)
	}
	if g.BreathCenter-math.Abs(g.BreathAmplitude) <= 0 {
		return fmt.Errorf("orbital cluster: breath scale can reach zero (center %g, amplitude %g)", g.BreathCenter, g.BreathAmplitude)
	}
	if g.StartRadius < 0 || g.RadiusStep < 0 || g.CenterRadius < 0 {
		return fmt.Errorf("orbital cluster: negative radius")
	}
	if err := checkThickness("orbital", g.OrbitalThickness); err != nil {
		return err
	}
	return checkThickness("orbital center", g.CenterThickness)
}

func (g OrbitalClusterGeometry) glow(acc float64, p Vec2, scale float64, ev evalEnv) float64 {
	s := g.BreathCenter + g.BreathAmplitude*math.Sin(2*math.Pi*ev.breathFreq*ev.t)
	q := Vec2{p.X / s, p.Y / s}
	for i := 0; i < g.OrbitalCount; i++ {
		r := g.StartRadius - float64(i)*g.RadiusStep
		shifted := Vec2{q.X - g.OrbitalDistance, q.Y}
		acc = ringGlow(acc, shifted, r, r, g.OrbitalThickness*scale)
		q = rotate(q, g.OrbitalRotationSpeed*ev.rotT)
	}
	return ringGlow(acc, q, g.CenterRadius, g.CenterRadius, g.CenterThickness*scale)
}

// CompositeRingSpokes combines a ring and a spoke array under one rotation.
// The outer ring layer uses this so its radiation ticks stay locked to the
// ring as it turns.
type CompositeRingSpokes struct {
	Ring   RingGeometry
	Spokes SpokesGeometry
}

func (g CompositeRingSpokes) offset() float64 { return g.Ring.RotationOffset }

func (g CompositeRingSpokes) validate() error {
	if err := g.Ring.validate(); err != nil {
		return err
	}
	return g.Spokes.validate()
}

func (g CompositeRingSpokes) glow(acc float64, p Vec2, scale float64, ev evalEnv) float64 {
	acc = g.Ring.glow(acc, p, scale, ev)
	return accumulate(acc, spokesDist(p, g.Spokes.Inner, g.Spokes.Outer, g.Spokes.Count), g.Spokes.Thickness*scale)
}

func checkThickness(what string, th float64) error {
	if th < thicknessFloor {
		return fmt.Errorf("%s: thickness %g below %g", what, th, thicknessFloor)
	}
	return nil
}
