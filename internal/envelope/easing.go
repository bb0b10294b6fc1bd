package envelope

import "fmt"

// Easing maps normalized ramp progress to a shaped value. Every easing
// is monotonic over [0,1] and fixes the endpoints: f(0)=0, f(1)=1.
// Inputs outside [0,1] are clamped.
type Easing func(t float64) float64

// Linear applies no shaping.
func Linear(t float64) float64 {
	return clamp01(t)
}

// Smooth is the classic smoothstep 3t^2-2t^3: zero slope at both ends.
func Smooth(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// Smoother is smootherstep 6t^5-15t^4+10t^3: zero first and second
// derivative at both ends, the gentlest ramp here.
func Smoother(t float64) float64 {
	t = clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// Cubic eases out with 1-(1-t)^3: a fast start that settles gently.
func Cubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// ByName resolves a configuration name to its easing function.
func ByName(name string) (Easing, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "smooth":
		return Smooth, nil
	case "smoother":
		return Smoother, nil
	case "cubic":
		return Cubic, nil
	default:
		return nil, fmt.Errorf("unknown easing %q (expected linear|smooth|smoother|cubic)", name)
	}
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
