package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -3, 0, 1, 0},
		{"above", 7, 0, 1, 1},
		{"negative range", 0, -1, -0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0.2, 0.4, 0.1); got != 0 {
		t.Errorf("below edge0 = %v, want 0", got)
	}
	if got := SmoothStep(0.2, 0.4, 0.5); got != 1 {
		t.Errorf("above edge1 = %v, want 1", got)
	}
	if got := SmoothStep(0, 1, 0.5); got != 0.5 {
		t.Errorf("midpoint = %v, want 0.5", got)
	}
	if got := SmoothStep(0.3, 0.3, 0.3); got != 1 {
		t.Errorf("degenerate edges at x = edge = %v, want 1", got)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		v, origin, step, want float64
	}{
		{0.26, 0, 0.1, 0.30000000000000004},
		{0.24, 0, 0.5, 0},
		{5, 1, 2, 5},
		{4.2, 1, 2, 5},
		{-0.74, -1, 0.5, -0.5},
		{0.123, 0, 0, 0.123},
	}

	for _, tt := range tests {
		if got := Snap(tt.v, tt.origin, tt.step); got != tt.want {
			t.Errorf("Snap(%v, %v, %v) = %v, want %v", tt.v, tt.origin, tt.step, got, tt.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gltf")
	if FileExists(path) {
		t.Fatal("FileExists reported a missing file")
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists did not find an existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists reported a directory as a file")
	}
}
