package panel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"

	"fxviewer/pkg/postfx"
)

type testEffects struct {
	dof   *postfx.DepthOfField
	pix   *postfx.Pixelation
	bloom *postfx.Bloom
	hue   *postfx.HueSaturation
	bc    *postfx.BrightnessContrast
	vig   *postfx.Vignette
	noise *postfx.Noise
	fxaa  *postfx.FXAA
}

func newTestPanel() (*Panel, testEffects) {
	fx := testEffects{
		dof: postfx.NewDepthOfField(postfx.DepthOfFieldOptions{
			FocusDistance: 0.08, FocalLength: 0.03, BokehScale: 5,
		}),
		pix: postfx.NewPixelation(0),
		bloom: postfx.NewBloom(postfx.BloomOptions{
			Threshold: 0.2, Smoothing: 0.1, Intensity: 8, Radius: 0.7,
			KernelSize: postfx.KernelLarge, MipmapBlur: true,
		}),
		hue:   postfx.NewHueSaturation(0, 0),
		bc:    postfx.NewBrightnessContrast(0, 0),
		vig:   postfx.NewVignette(0.5, 0.5, false),
		noise: postfx.NewNoise(true, 1),
		fxaa:  postfx.NewFXAA(),
	}
	chain := postfx.NewChain(fx.dof, fx.pix, fx.bloom, fx.hue, fx.bc, fx.vig, fx.noise, fx.fxaa)
	return New(chain), fx
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestGroupsFollowChainOrder(t *testing.T) {
	p, _ := newTestPanel()
	want := []string{GroupDOF, GroupPixelation, GroupBloom, GroupHue, GroupBrightness, GroupVignette, GroupNoise, GroupFXAA}
	var got []string
	for _, g := range p.Groups() {
		got = append(got, g.Title)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
}

func TestEveryGroupHasCommonControls(t *testing.T) {
	p, _ := newTestPanel()
	for _, g := range p.Groups() {
		t.Run(g.Title, func(t *testing.T) {
			if c, ok := g.Control(FieldEnabled); !ok || c.Kind() != KindToggle {
				t.Errorf("missing enabled toggle")
			}
			c, ok := g.Control(FieldBlendMode)
			if !ok {
				t.Fatalf("missing blend mode select")
			}
			sel, ok := c.(*Select)
			if !ok || len(sel.Options) != 32 {
				t.Errorf("blend mode select should list 32 options")
			}
			o, ok := g.Control(FieldOpacity)
			if !ok {
				t.Fatalf("missing opacity slider")
			}
			if s := o.(*Slider); s.Min != 0 || s.Max != 1 {
				t.Errorf("opacity range = [%v, %v]", s.Min, s.Max)
			}
		})
	}
}

func TestOnControlChangeWritesEffect(t *testing.T) {
	p, fx := newTestPanel()
	if err := p.OnControlChange(GroupDOF, "focus distance", 0.5); err != nil {
		t.Fatal(err)
	}
	if fx.dof.FocusDistance != 0.5 {
		t.Errorf("focus distance = %v", fx.dof.FocusDistance)
	}
	if err := p.OnControlChange(GroupBloom, "size", "small"); err != nil {
		t.Fatal(err)
	}
	if fx.bloom.KernelSize != postfx.KernelSmall {
		t.Errorf("kernel size = %v", fx.bloom.KernelSize)
	}
	if err := p.OnControlChange(GroupVignette, "eskil", true); err != nil {
		t.Fatal(err)
	}
	if !fx.vig.Eskil {
		t.Error("eskil not set")
	}
	if err := p.OnControlChange(GroupNoise, FieldBlendMode, "Soft Light"); err != nil {
		t.Fatal(err)
	}
	if fx.noise.BlendMode().Function != postfx.BlendSoftLight {
		t.Errorf("blend = %v", fx.noise.BlendMode().Function)
	}
	if err := p.OnControlChange(GroupFXAA, FieldOpacity, 0.25); err != nil {
		t.Fatal(err)
	}
	if fx.fxaa.BlendMode().Opacity != 0.25 {
		t.Errorf("opacity = %v", fx.fxaa.BlendMode().Opacity)
	}
}

func TestOnControlChangeIdempotent(t *testing.T) {
	p, _ := newTestPanel()
	changes := []struct {
		group, field string
		value        interface{}
	}{
		{GroupDOF, FieldEnabled, true},
		{GroupBloom, "intensity", 12.0},
		{GroupHue, FieldBlendMode, "Color"},
		{GroupPixelation, "granularity", 9},
	}
	for _, c := range changes {
		if err := p.OnControlChange(c.group, c.field, c.value); err != nil {
			t.Fatal(err)
		}
	}
	once := p.Snapshot()
	for _, c := range changes {
		if err := p.OnControlChange(c.group, c.field, c.value); err != nil {
			t.Fatal(err)
		}
	}
	if twice := p.Snapshot(); !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed state:\n%v\n%v", once, twice)
	}
}

func TestSliderBounds(t *testing.T) {
	p, fx := newTestPanel()
	tests := []struct {
		name  string
		group string
		field string
		value interface{}
		got   func() float32
		want  float32
	}{
		{"clamp high", GroupDOF, "bokeh scale", 100.0, func() float32 { return fx.dof.BokehScale }, 20},
		{"clamp low", GroupDOF, "bokeh scale", -3, func() float32 { return fx.dof.BokehScale }, 0},
		{"snap to step", GroupPixelation, "granularity", 7.4, func() float32 { return fx.pix.Granularity }, 7},
		{"snap to nearest", GroupVignette, "darkness", 0.26, func() float32 { return fx.vig.Darkness }, 0.3},
		{"negative range", GroupBrightness, "contrast", float32(-0.5), func() float32 { return fx.bc.Contrast }, -0.5},
		{"opacity clamp", GroupBloom, FieldOpacity, 2, func() float32 { return fx.bloom.BlendMode().Opacity }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.OnControlChange(tt.group, tt.field, tt.value); err != nil {
				t.Fatal(err)
			}
			if got := tt.got(); !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnControlChangeErrors(t *testing.T) {
	p, fx := newTestPanel()
	tests := []struct {
		name  string
		group string
		field string
		value interface{}
		want  error
	}{
		{"unknown group", "Glitch", FieldEnabled, true, ErrUnknownControl},
		{"unknown field", GroupBloom, "focus", 0.5, ErrUnknownControl},
		{"string to slider", GroupBloom, "intensity", "high", ErrValueType},
		{"number to toggle", GroupBloom, FieldEnabled, 1.0, ErrValueType},
		{"bool to select", GroupBloom, FieldBlendMode, true, ErrValueType},
		{"unknown option", GroupBloom, FieldBlendMode, "Glow", ErrValueType},
		{"nan", GroupBloom, "intensity", math.NaN(), ErrValueType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.OnControlChange(tt.group, tt.field, tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if fx.bloom.Intensity != 8 || fx.bloom.Enabled() {
		t.Error("failed changes must not touch the effect")
	}
}

func TestEnabledToggle(t *testing.T) {
	p, fx := newTestPanel()
	set := func(field string, v interface{}) {
		t.Helper()
		if err := p.OnControlChange(GroupDOF, field, v); err != nil {
			t.Fatal(err)
		}
	}

	set(FieldEnabled, true)
	if fx.dof.BlendMode().Function != postfx.BlendAlpha {
		t.Fatalf("enabled blend = %v, want Alpha", fx.dof.BlendMode().Function)
	}
	set(FieldBlendMode, "Multiply")
	set(FieldEnabled, true)
	if fx.dof.BlendMode().Function != postfx.BlendMultiply {
		t.Errorf("re-enabling replaced custom blend with %v", fx.dof.BlendMode().Function)
	}
	set(FieldEnabled, false)
	if fx.dof.BlendMode().Function != postfx.BlendSkip {
		t.Errorf("disabled blend = %v, want Skip", fx.dof.BlendMode().Function)
	}
	set(FieldEnabled, true)
	if fx.dof.FocusDistance != 0.08 || fx.dof.FocalLength != 0.03 {
		t.Errorf("toggling changed parameters: focus %v focal %v", fx.dof.FocusDistance, fx.dof.FocalLength)
	}
}

func TestOnChangeCallback(t *testing.T) {
	p, _ := newTestPanel()
	var calls []string
	var last interface{}
	p.OnChange(func(group, field string, value interface{}) {
		calls = append(calls, group+"/"+field)
		last = value
	})
	if err := p.OnControlChange(GroupVignette, "offset", 2.0); err != nil {
		t.Fatal(err)
	}
	_ = p.OnControlChange(GroupVignette, "nope", 1.0)
	if len(calls) != 1 || calls[0] != GroupVignette+"/offset" {
		t.Fatalf("calls = %v", calls)
	}
	if last != 1.0 {
		t.Errorf("callback value = %v, want clamped 1", last)
	}
}

func TestSnapshotRestore(t *testing.T) {
	p, _ := newTestPanel()
	for _, c := range []struct {
		group, field string
		value        interface{}
	}{
		{GroupBloom, FieldEnabled, true},
		{GroupBloom, FieldBlendMode, "Screen"},
		{GroupBloom, "mipmap blur", false},
		{GroupDOF, "bokeh scale", 9.5},
		{GroupHue, "saturation", -0.4},
		{GroupFXAA, FieldEnabled, true},
	} {
		if err := p.OnControlChange(c.group, c.field, c.value); err != nil {
			t.Fatal(err)
		}
	}
	snap := p.Snapshot()

	fresh, fx := newTestPanel()
	if err := fresh.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if got := fresh.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Errorf("restored snapshot differs:\n got %v\nwant %v", got, snap)
	}
	if fx.bloom.BlendMode().Function != postfx.BlendScreen || fx.bloom.MipmapBlur {
		t.Errorf("bloom not restored: %v mipmap=%v", fx.bloom.BlendMode().Function, fx.bloom.MipmapBlur)
	}
}

func TestRestoreReportsUnknownEntries(t *testing.T) {
	p, fx := newTestPanel()
	err := p.Restore(map[string]map[string]interface{}{
		GroupVignette: {"darkness": 0.8, "sharpness": 1.0},
		"Glitch":      {FieldEnabled: true},
	})
	if !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("err = %v, want ErrUnknownControl", err)
	}
	if !approx(fx.vig.Darkness, 0.8) {
		t.Errorf("valid entries should still apply, darkness = %v", fx.vig.Darkness)
	}
}

func TestSetCollapsed(t *testing.T) {
	p, _ := newTestPanel()
	p.SetCollapsed([]string{GroupBloom, "missing"}, true)
	g, _ := p.Group(GroupBloom)
	if !g.Collapsed {
		t.Error("bloom should be collapsed")
	}
}

func TestNavigatorRows(t *testing.T) {
	p, _ := newTestPanel()
	nav := NewNavigator(p)
	total := 0
	for _, g := range p.Groups() {
		total += 1 + len(g.Controls)
	}
	if got := len(nav.Rows()); got != total {
		t.Fatalf("rows = %d, want %d", got, total)
	}

	if err := nav.Activate(); err != nil {
		t.Fatal(err)
	}
	dof, _ := p.Group(GroupDOF)
	if !dof.Collapsed {
		t.Fatal("activating a header should collapse the group")
	}
	if got := len(nav.Rows()); got != total-len(dof.Controls) {
		t.Errorf("rows after collapse = %d", got)
	}
	if err := nav.Increase(); err != nil {
		t.Fatal(err)
	}
	if dof.Collapsed {
		t.Error("increase on a header should expand it")
	}
}

func TestNavigatorWraps(t *testing.T) {
	p, _ := newTestPanel()
	nav := NewNavigator(p)
	nav.Prev()
	if got, want := nav.Cursor(), len(nav.Rows())-1; got != want {
		t.Errorf("prev from top = %d, want %d", got, want)
	}
	nav.Next()
	if nav.Cursor() != 0 {
		t.Errorf("next from bottom = %d, want 0", nav.Cursor())
	}
}

func TestNavigatorEdits(t *testing.T) {
	p, fx := newTestPanel()
	nav := NewNavigator(p)
	focus := func(group, field string) {
		t.Helper()
		for i := 0; i < len(nav.Rows()); i++ {
			row, _ := nav.Focused()
			if row.Group.Title == group && row.Control != nil && row.Control.Name() == field {
				return
			}
			nav.Next()
		}
		t.Fatalf("row %s/%s not found", group, field)
	}

	focus(GroupDOF, FieldEnabled)
	if err := nav.Activate(); err != nil {
		t.Fatal(err)
	}
	if !fx.dof.Enabled() {
		t.Error("activate should flip the toggle on")
	}

	focus(GroupDOF, "bokeh scale")
	if err := nav.Increase(); err != nil {
		t.Fatal(err)
	}
	if !approx(fx.dof.BokehScale, 5.1) {
		t.Errorf("bokeh scale = %v, want 5.1", fx.dof.BokehScale)
	}
	if err := nav.Decrease(); err != nil {
		t.Fatal(err)
	}
	if !approx(fx.dof.BokehScale, 5) {
		t.Errorf("bokeh scale = %v, want 5", fx.dof.BokehScale)
	}

	focus(GroupDOF, FieldBlendMode)
	if err := p.OnControlChange(GroupDOF, FieldBlendMode, "Vivid Light"); err != nil {
		t.Fatal(err)
	}
	if err := nav.Increase(); err != nil {
		t.Fatal(err)
	}
	if fx.dof.BlendMode().Function != postfx.BlendSkip {
		t.Errorf("cycling past the last option = %v, want Skip", fx.dof.BlendMode().Function)
	}
	if err := nav.Decrease(); err != nil {
		t.Fatal(err)
	}
	if fx.dof.BlendMode().Function != postfx.BlendVividLight {
		t.Errorf("cycling back = %v, want Vivid Light", fx.dof.BlendMode().Function)
	}
}

func TestDrawOverlay(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	newImage := func() *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 640, 480))
		for i := range img.Pix {
			img.Pix[i] = 255
		}
		return img
	}

	p, _ := newTestPanel()
	img := newImage()
	p.Draw(img, NewNavigator(p))
	if got := img.RGBAAt(640-overlayMargin-2, overlayMargin+rowHeight+2); got == white {
		t.Error("panel area was not drawn")
	}
	if got := img.RGBAAt(10, 10); got != white {
		t.Errorf("pixel outside the panel changed to %v", got)
	}

	p.Visible = false
	hidden := newImage()
	p.Draw(hidden, nil)
	if !reflect.DeepEqual(hidden.Pix, newImage().Pix) {
		t.Error("hidden panel should not draw")
	}
}
