package render

import "math"

// FilmicToneMap applies an ACES-approximation curve with exposure in EV and
// gamma (default 2.2). Reads "ExposureEV" and "OutputGamma" from Params.
func FilmicToneMap(buf []Color, u *Uniforms) {
	exposureEV := 0.0
	gamma := 2.2
	if u != nil && u.Params != nil {
		if v, ok := u.Params["ExposureEV"]; ok {
			exposureEV = v
		}
		if g, ok := u.Params["OutputGamma"]; ok && g > 0 {
			gamma = g
		}
	}
	exposure := float32(math.Pow(2.0, exposureEV))

	for i := range buf {
		r := acesApprox(buf[i].R * exposure)
		g := acesApprox(buf[i].G * exposure)
		b := acesApprox(buf[i].B * exposure)

		if gamma != 1.0 {
			ig := 1.0 / gamma
			r = powf(r, ig)
			g = powf(g, ig)
			b = powf(b, ig)
		}

		buf[i].R = clamp01(r)
		buf[i].G = clamp01(g)
		buf[i].B = clamp01(b)
	}
}

func DefaultToneMap(buf []Color) {
	FilmicToneMap(buf, &Uniforms{Params: map[string]float64{"ExposureEV": 0, "OutputGamma": 2.2}})
}

// DefaultLimiter protects the panel PSU in two stages:
//  1. per-pixel white cap: scales (R,G,B) so R+G+B <= "WhiteCap" (default 3)
//  2. global current budget: estimates draw from "LEDChan_mA" (default 20)
//     and scales the frame to stay under "Budget_mA", with a soft knee at
//     "LimiterKnee" (default 0.9). No budget set means stage 2 is skipped.
//
// Previews set "PreviewMode" to bypass the limiter entirely.
func DefaultLimiter(buf []Color, u *Uniforms) {
	if u == nil {
		return
	}
	if u.Bools["PreviewMode"] || u.Params["PreviewMode"] > 0.5 {
		return
	}

	whiteCap := 3.0
	chanmA := 20.0
	budget := 0.0
	knee := 0.9
	if u.Params != nil {
		if v, ok := u.Params["WhiteCap"]; ok && v > 0 {
			whiteCap = v
		}
		if v, ok := u.Params["LEDChan_mA"]; ok && v > 0 {
			chanmA = v
		}
		if v, ok := u.Params["Budget_mA"]; ok && v > 0 {
			budget = v
		}
		if v, ok := u.Params["LimiterKnee"]; ok && v > 0 && v < 1 {
			knee = v
		}
	}

	wc := float32(whiteCap)
	for i := range buf {
		s := buf[i].R + buf[i].G + buf[i].B
		if s > wc && s > 0 {
			scale := wc / s
			buf[i].R *= scale
			buf[i].G *= scale
			buf[i].B *= scale
		}
	}

	if budget <= 0 {
		return
	}
	var total float64
	cm := float32(chanmA)
	for i := range buf {
		total += float64((buf[i].R + buf[i].G + buf[i].B) * cm)
	}
	if total <= 0 {
		return
	}

	ratio := total / budget
	if ratio <= 1.0 {
		if ratio <= knee {
			return
		}
		// ease from no scaling at the knee to exactly meeting the budget
		minS := budget / total
		t := (ratio - knee) / (1.0 - knee)
		applyGlobalScale(buf, float32(1.0-t*(1.0-minS)))
		return
	}
	applyGlobalScale(buf, float32(budget/total))
}

func applyGlobalScale(buf []Color, s float32) {
	if s >= 1.0 {
		return
	}
	for i := range buf {
		buf[i].R *= s
		buf[i].G *= s
		buf[i].B *= s
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func powf(x float32, p float64) float32 {
	return float32(math.Pow(float64(x), p))
}

// Approximate ACES filmic curve (Narkowicz 2015).
func acesApprox(x float32) float32 {
	a := float32(2.51)
	b := float32(0.03)
	c := float32(2.43)
	d := float32(0.59)
	e := float32(0.14)
	return clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
}
