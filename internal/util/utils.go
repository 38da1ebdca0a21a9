package util

import (
	"os"
)

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp32 is Clamp for float32 values
func Clamp32(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SmoothStep is the GLSL smoothstep: 0 below edge0, 1 above edge1, cubic in between
func SmoothStep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp32((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Snap rounds value to the nearest multiple of step counted from origin
func Snap(value, origin, step float64) float64 {
	if step <= 0 {
		return value
	}
	n := (value - origin) / step
	if n < 0 {
		n -= 0.5
	} else {
		n += 0.5
	}
	return origin + float64(int64(n))*step
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
