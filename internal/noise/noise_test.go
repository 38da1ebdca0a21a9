package noise

import "testing"

func TestGrainDeterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a.Grain(x, y, 3) != b.Grain(x, y, 3) {
				t.Fatalf("Grain(%d, %d, 3) differs between generators with equal seeds", x, y)
			}
		}
	}
}

func TestGrainRange(t *testing.T) {
	g := NewGenerator(7)
	for frame := 0; frame < 4; frame++ {
		for i := 0; i < 256; i++ {
			v := g.Grain(i, i*3, frame)
			if v < 0 || v >= 1 {
				t.Fatalf("Grain out of range: %v", v)
			}
		}
	}
}

func TestGrainChangesPerFrame(t *testing.T) {
	g := NewGenerator(1)
	same := 0
	for i := 0; i < 64; i++ {
		if g.Grain(i, 0, 0) == g.Grain(i, 0, 1) {
			same++
		}
	}
	if same == 64 {
		t.Error("grain does not vary between frames")
	}
}

func TestPerlin2DZeroAtLattice(t *testing.T) {
	g := NewGenerator(5)
	if v := g.Perlin2D(4, 2, 0); v != 0 {
		t.Errorf("Perlin2D at lattice point = %v, want 0", v)
	}
}

func TestPerlin2DSmooth(t *testing.T) {
	g := NewGenerator(11)
	prev := g.Perlin2D(0.05, 1.3, 0)
	for i := 1; i < 200; i++ {
		v := g.Perlin2D(0.05+float64(i)*0.01, 1.3, 0)
		if v < -1 || v > 1 {
			t.Fatalf("Perlin2D out of range: %v", v)
		}
		if d := v - prev; d > 0.1 || d < -0.1 {
			t.Fatalf("Perlin2D jumps by %v between neighbouring samples", d)
		}
		prev = v
	}
}
