package postfx

import (
	"fmt"
	"strings"
)

// BlendFunction selects the operator used to composite an effect's output
// (source) onto the accumulated frame (destination). Codes are stable.
type BlendFunction uint8

const (
	BlendSkip        BlendFunction = 0
	BlendAdd         BlendFunction = 1
	BlendAlpha       BlendFunction = 2
	BlendAverage     BlendFunction = 3
	BlendColor       BlendFunction = 4
	BlendColorBurn   BlendFunction = 5
	BlendColorDodge  BlendFunction = 6
	BlendDarken      BlendFunction = 7
	BlendDifference  BlendFunction = 8
	BlendDivide      BlendFunction = 9
	BlendExclusion   BlendFunction = 10
	BlendHardLight   BlendFunction = 11
	BlendHardMix     BlendFunction = 12
	BlendHue         BlendFunction = 13
	BlendInvert      BlendFunction = 14
	BlendInvertRGB   BlendFunction = 15
	BlendLighten     BlendFunction = 16
	BlendLinearBurn  BlendFunction = 17
	BlendLinearDodge BlendFunction = 18
	BlendLinearLight BlendFunction = 19
	BlendLuminosity  BlendFunction = 20
	BlendMultiply    BlendFunction = 21
	BlendNegation    BlendFunction = 22
	BlendNormal      BlendFunction = 23
	BlendOverlay     BlendFunction = 24
	BlendPinLight    BlendFunction = 25
	BlendReflect     BlendFunction = 26
	BlendSaturation  BlendFunction = 27
	BlendScreen      BlendFunction = 28
	BlendSoftLight   BlendFunction = 29
	BlendSubtract    BlendFunction = 30
	BlendVividLight  BlendFunction = 31
)

// blendNames is the display-name table, indexed by code
var blendNames = [...]string{
	BlendSkip:        "Skip",
	BlendAdd:         "Add",
	BlendAlpha:       "Alpha",
	BlendAverage:     "Average",
	BlendColor:       "Color",
	BlendColorBurn:   "Color Burn",
	BlendColorDodge:  "Color Dodge",
	BlendDarken:      "Darken",
	BlendDifference:  "Difference",
	BlendDivide:      "Divide",
	BlendExclusion:   "Exclusion",
	BlendHardLight:   "Hard Light",
	BlendHardMix:     "Hard Mix",
	BlendHue:         "Hue",
	BlendInvert:      "Invert",
	BlendInvertRGB:   "Invert RGB",
	BlendLighten:     "Lighten",
	BlendLinearBurn:  "Linear Burn",
	BlendLinearDodge: "Linear Dodge",
	BlendLinearLight: "Linear Light",
	BlendLuminosity:  "Luminosity",
	BlendMultiply:    "Multiply",
	BlendNegation:    "Negation",
	BlendNormal:      "Normal",
	BlendOverlay:     "Overlay",
	BlendPinLight:    "Pin Light",
	BlendReflect:     "Reflect",
	BlendSaturation:  "Saturation",
	BlendScreen:      "Screen",
	BlendSoftLight:   "Soft Light",
	BlendSubtract:    "Subtract",
	BlendVividLight:  "Vivid Light",
}

// BlendFunctions returns every blend function in display order
func BlendFunctions() []BlendFunction {
	fns := make([]BlendFunction, len(blendNames))
	for i := range blendNames {
		fns[i] = BlendFunction(i)
	}
	return fns
}

// BlendFunctionNames returns the display names in the same order as BlendFunctions
func BlendFunctionNames() []string {
	names := make([]string, len(blendNames))
	copy(names, blendNames[:])
	return names
}

// Valid reports whether f is a known blend function
func (f BlendFunction) Valid() bool {
	return int(f) < len(blendNames)
}

// String returns the display name
func (f BlendFunction) String() string {
	if !f.Valid() {
		return fmt.Sprintf("BlendFunction(%d)", uint8(f))
	}
	return blendNames[f]
}

// ParseBlendFunction resolves a display name, case-insensitively
func ParseBlendFunction(name string) (BlendFunction, error) {
	for i, n := range blendNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return BlendFunction(i), nil
		}
	}
	return BlendSkip, fmt.Errorf("unknown blend function %q", name)
}

// MarshalYAML encodes the function by display name
func (f BlendFunction) MarshalYAML() (interface{}, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid blend function code %d", uint8(f))
	}
	return f.String(), nil
}

// UnmarshalYAML decodes a display name
func (f *BlendFunction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseBlendFunction(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// BlendMode pairs a blend function with an opacity in [0, 1]
type BlendMode struct {
	Function BlendFunction
	Opacity  float32
}

// Composite blends src onto dst with the receiver's function and opacity
func (m BlendMode) Composite(dst, src RGBA) RGBA {
	return m.Function.Apply(dst, src, m.Opacity)
}

// Apply blends src onto dst: mix(dst, blend(dst, src), opacity). Alpha mixes
// by src.A*opacity instead and Skip returns dst unchanged.
func (f BlendFunction) Apply(dst, src RGBA, opacity float32) RGBA {
	if f == BlendSkip || opacity <= 0 {
		return dst
	}
	if f == BlendAlpha {
		return mixRGBA(dst, src, src.A*opacity)
	}

	var r, g, b float32
	a := dst.A
	switch f {
	case BlendColor, BlendHue, BlendLuminosity, BlendSaturation:
		r, g, b = blendNonSeparable(f, dst, src)
	case BlendNormal:
		r, g, b, a = src.R, src.G, src.B, src.A
	default:
		op := separable[f]
		if op == nil {
			return dst
		}
		r, g, b = op(dst.R, src.R), op(dst.G, src.G), op(dst.B, src.B)
	}

	return mixRGBA(dst, RGBA{r, g, b, a}, opacity)
}

// separable holds the per-channel operators, x is destination and y source
var separable = map[BlendFunction]func(x, y float32) float32{
	BlendAdd:         func(x, y float32) float32 { return x + y },
	BlendAverage:     func(x, y float32) float32 { return (x + y) * 0.5 },
	BlendColorBurn:   colorBurn,
	BlendColorDodge:  colorDodge,
	BlendDarken:      func(x, y float32) float32 { return min(x, y) },
	BlendDifference:  func(x, y float32) float32 { return abs32(x - y) },
	BlendDivide:      divide,
	BlendExclusion:   func(x, y float32) float32 { return x + y - 2*x*y },
	BlendHardLight:   func(x, y float32) float32 { return overlay(y, x) },
	BlendHardMix:     hardMix,
	BlendInvert:      func(_, y float32) float32 { return 1 - y },
	BlendInvertRGB:   func(x, y float32) float32 { return (1 - x) * y },
	BlendLighten:     func(x, y float32) float32 { return max(x, y) },
	BlendLinearBurn:  linearBurn,
	BlendLinearDodge: linearDodge,
	BlendLinearLight: linearLight,
	BlendMultiply:    func(x, y float32) float32 { return x * y },
	BlendNegation:    func(x, y float32) float32 { return 1 - abs32(1-x-y) },
	BlendOverlay:     overlay,
	BlendPinLight:    pinLight,
	BlendReflect:     reflect,
	BlendScreen:      func(x, y float32) float32 { return 1 - (1-x)*(1-y) },
	BlendSoftLight:   softLight,
	BlendSubtract:    func(x, y float32) float32 { return max(x-y, 0) },
	BlendVividLight:  vividLight,
}

func colorBurn(x, y float32) float32 {
	if y <= 0 {
		return 0
	}
	return max(1-(1-x)/y, 0)
}

func colorDodge(x, y float32) float32 {
	if y >= 1 {
		return 1
	}
	return min(x/(1-y), 1)
}

func divide(x, y float32) float32 {
	if y <= 0 {
		return 1
	}
	return min(x/y, 1)
}

func hardMix(x, y float32) float32 {
	if x+y >= 1 {
		return 1
	}
	return 0
}

func linearBurn(x, y float32) float32 {
	return max(x+y-1, 0)
}

func linearDodge(x, y float32) float32 {
	return min(x+y, 1)
}

func linearLight(x, y float32) float32 {
	if y < 0.5 {
		return linearBurn(x, 2*y)
	}
	return linearDodge(x, 2*(y-0.5))
}

func overlay(x, y float32) float32 {
	if x < 0.5 {
		return 2 * x * y
	}
	return 1 - 2*(1-x)*(1-y)
}

func pinLight(x, y float32) float32 {
	if y < 0.5 {
		return min(x, 2*y)
	}
	return max(x, 2*(y-0.5))
}

func reflect(x, y float32) float32 {
	if y >= 1 {
		return 1
	}
	return min(x*x/(1-y), 1)
}

// softLight follows the W3C compositing formula
func softLight(x, y float32) float32 {
	if y <= 0.5 {
		return x - (1-2*y)*x*(1-x)
	}
	var d float32
	if x <= 0.25 {
		d = ((16*x-12)*x + 4) * x
	} else {
		d = sqrt32(x)
	}
	return x + (2*y-1)*(d-x)
}

func vividLight(x, y float32) float32 {
	if y < 0.5 {
		return colorBurn(x, 2*y)
	}
	return colorDodge(x, 2*(y-0.5))
}
