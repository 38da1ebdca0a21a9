package postfx

import (
	"math"
	"testing"
)

func TestBlendFunctionCodesStable(t *testing.T) {
	tests := []struct {
		name string
		code uint8
	}{
		{"Skip", 0}, {"Add", 1}, {"Alpha", 2}, {"Average", 3},
		{"Color", 4}, {"Color Burn", 5}, {"Color Dodge", 6}, {"Darken", 7},
		{"Difference", 8}, {"Divide", 9}, {"Exclusion", 10}, {"Hard Light", 11},
		{"Hard Mix", 12}, {"Hue", 13}, {"Invert", 14}, {"Invert RGB", 15},
		{"Lighten", 16}, {"Linear Burn", 17}, {"Linear Dodge", 18}, {"Linear Light", 19},
		{"Luminosity", 20}, {"Multiply", 21}, {"Negation", 22}, {"Normal", 23},
		{"Overlay", 24}, {"Pin Light", 25}, {"Reflect", 26}, {"Saturation", 27},
		{"Screen", 28}, {"Soft Light", 29}, {"Subtract", 30}, {"Vivid Light", 31},
	}

	if len(tests) != len(BlendFunctions()) {
		t.Fatalf("table covers %d functions, enumeration has %d", len(tests), len(BlendFunctions()))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseBlendFunction(tt.name)
			if err != nil {
				t.Fatalf("ParseBlendFunction(%q): %v", tt.name, err)
			}
			if uint8(f) != tt.code {
				t.Errorf("code = %d, want %d", uint8(f), tt.code)
			}
			if f.String() != tt.name {
				t.Errorf("String() = %q, want %q", f.String(), tt.name)
			}
		})
	}
}

func TestBlendFunctionCodesDistinct(t *testing.T) {
	seen := make(map[BlendFunction]string)
	names := BlendFunctionNames()
	for i, f := range BlendFunctions() {
		if prev, ok := seen[f]; ok {
			t.Errorf("%q and %q share code %d", prev, names[i], f)
		}
		seen[f] = names[i]
	}
}

func TestParseBlendFunctionCaseInsensitive(t *testing.T) {
	f, err := ParseBlendFunction("  color dodge ")
	if err != nil || f != BlendColorDodge {
		t.Errorf("ParseBlendFunction = %v, %v; want Color Dodge", f, err)
	}
	if _, err := ParseBlendFunction("Plus Darker"); err == nil {
		t.Error("expected an error for an unknown name")
	}
	if s := BlendFunction(200).String(); s != "BlendFunction(200)" {
		t.Errorf("invalid String() = %q", s)
	}
}

func TestBlendZeroOpacityIsIdentity(t *testing.T) {
	dst := RGBA{0.3, 0.6, 0.9, 1}
	src := RGBA{0.8, 0.1, 0.5, 0.7}

	for _, f := range BlendFunctions() {
		got := f.Apply(dst, src, 0)
		if got != dst {
			t.Errorf("%s with opacity 0 = %+v, want %+v", f, got, dst)
		}
	}
}

func TestBlendSkipIgnoresSource(t *testing.T) {
	dst := RGBA{0.25, 0.5, 0.75, 1}
	for _, src := range []RGBA{{}, {1, 1, 1, 1}, {5, -2, 0.5, 0.3}} {
		if got := BlendSkip.Apply(dst, src, 1); got != dst {
			t.Errorf("Skip.Apply(%+v) = %+v, want %+v", src, got, dst)
		}
	}
}

func TestBlendOperators(t *testing.T) {
	dst := RGBA{0.5, 0.25, 1, 1}
	src := RGBA{0.5, 0.5, 0, 1}

	tests := []struct {
		fn   BlendFunction
		want RGBA
	}{
		{BlendNormal, RGBA{0.5, 0.5, 0, 1}},
		{BlendAdd, RGBA{1, 0.75, 1, 1}},
		{BlendAverage, RGBA{0.5, 0.375, 0.5, 1}},
		{BlendMultiply, RGBA{0.25, 0.125, 0, 1}},
		{BlendScreen, RGBA{0.75, 0.625, 1, 1}},
		{BlendDarken, RGBA{0.5, 0.25, 0, 1}},
		{BlendLighten, RGBA{0.5, 0.5, 1, 1}},
		{BlendDifference, RGBA{0, 0.25, 1, 1}},
		{BlendSubtract, RGBA{0, 0, 1, 1}},
		{BlendExclusion, RGBA{0.5, 0.5, 1, 1}},
		{BlendInvert, RGBA{0.5, 0.5, 1, 1}},
		{BlendInvertRGB, RGBA{0.25, 0.375, 0, 1}},
		{BlendLinearDodge, RGBA{1, 0.75, 1, 1}},
		{BlendLinearBurn, RGBA{0, 0, 0, 1}},
		{BlendHardMix, RGBA{1, 0, 1, 1}},
		{BlendNegation, RGBA{1, 0.75, 1, 1}},
		{BlendDivide, RGBA{1, 0.5, 1, 1}},
		{BlendOverlay, RGBA{0.5, 0.25, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			got := tt.fn.Apply(dst, src, 1)
			if !approxRGBA(got, tt.want, 1e-6) {
				t.Errorf("%s = %+v, want %+v", tt.fn, got, tt.want)
			}
		})
	}
}

func TestBlendOpacityMixes(t *testing.T) {
	dst := RGBA{0, 0, 0, 1}
	src := RGBA{1, 1, 1, 1}
	got := BlendNormal.Apply(dst, src, 0.25)
	if !approxRGBA(got, RGBA{0.25, 0.25, 0.25, 1}, 1e-6) {
		t.Errorf("Normal at 0.25 = %+v", got)
	}
}

func TestBlendAlphaUsesSourceAlpha(t *testing.T) {
	dst := RGBA{0, 0, 0, 1}
	src := RGBA{1, 1, 1, 0.5}
	got := BlendAlpha.Apply(dst, src, 0.5)
	want := RGBA{0.25, 0.25, 0.25, 0.875}
	if !approxRGBA(got, want, 1e-6) {
		t.Errorf("Alpha = %+v, want %+v", got, want)
	}

	transparent := RGBA{1, 0, 0, 0}
	if got := BlendAlpha.Apply(dst, transparent, 1); got != dst {
		t.Errorf("Alpha with transparent source = %+v, want %+v", got, dst)
	}
}

func TestBlendNonSeparablePreservesLuminosity(t *testing.T) {
	dst := RGBA{0.2, 0.4, 0.6, 1}
	src := RGBA{0.9, 0.1, 0.1, 1}

	for _, f := range []BlendFunction{BlendHue, BlendColor, BlendSaturation} {
		got := f.Apply(dst, src, 1)
		if d := lum(got.R, got.G, got.B) - lum(dst.R, dst.G, dst.B); math.Abs(float64(d)) > 1e-5 {
			t.Errorf("%s changed luminosity by %v", f, d)
		}
	}

	got := BlendLuminosity.Apply(dst, src, 1)
	if d := lum(got.R, got.G, got.B) - lum(src.R, src.G, src.B); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("Luminosity result has luminosity off by %v", d)
	}
}

func TestSoftLightIdentityAtHalf(t *testing.T) {
	for _, x := range []float32{0, 0.1, 0.3, 0.5, 0.9, 1} {
		if got := softLight(x, 0.5); math.Abs(float64(got-x)) > 1e-6 {
			t.Errorf("softLight(%v, 0.5) = %v, want %v", x, got, x)
		}
	}
}

func TestBlendFullOpacityReplaces(t *testing.T) {
	base := gradientFrame(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x+1 < 16; x++ {
			dst, src := base.At(x, y), base.At(x+1, y)
			if got := BlendNormal.Apply(dst, src, 1); got != src {
				t.Fatalf("Normal at (%d, %d) = %+v, want %+v", x, y, got, src)
			}
			if got := BlendAlpha.Apply(dst, src, 1); src.A == 1 && got != src {
				t.Fatalf("Alpha at (%d, %d) = %+v, want %+v", x, y, got, src)
			}
		}
	}
}

func approxRGBA(a, b RGBA, eps float64) bool {
	return math.Abs(float64(a.R-b.R)) <= eps &&
		math.Abs(float64(a.G-b.G)) <= eps &&
		math.Abs(float64(a.B-b.B)) <= eps &&
		math.Abs(float64(a.A-b.A)) <= eps
}
