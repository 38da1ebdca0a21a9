package postfx

import (
	"fmt"
	"strings"
)

// KernelSize selects the blur kernel of the bloom effect when mipmap blur is off
type KernelSize uint8

const (
	KernelVerySmall KernelSize = iota
	KernelSmall
	KernelMedium
	KernelLarge
	KernelVeryLarge
	KernelHuge
)

var kernelNames = [...]string{
	KernelVerySmall: "very small",
	KernelSmall:     "small",
	KernelMedium:    "medium",
	KernelLarge:     "large",
	KernelVeryLarge: "very large",
	KernelHuge:      "huge",
}

// kernelRadii is the box radius, in pixels at a 540 line frame, of each size
var kernelRadii = [...]int{
	KernelVerySmall: 1,
	KernelSmall:     2,
	KernelMedium:    4,
	KernelLarge:     7,
	KernelVeryLarge: 11,
	KernelHuge:      16,
}

// KernelSizes returns every kernel size from smallest to largest
func KernelSizes() []KernelSize {
	sizes := make([]KernelSize, len(kernelNames))
	for i := range kernelNames {
		sizes[i] = KernelSize(i)
	}
	return sizes
}

// KernelSizeNames returns the display names in the same order as KernelSizes
func KernelSizeNames() []string {
	names := make([]string, len(kernelNames))
	copy(names, kernelNames[:])
	return names
}

// String returns the display name
func (k KernelSize) String() string {
	if int(k) >= len(kernelNames) {
		return fmt.Sprintf("KernelSize(%d)", uint8(k))
	}
	return kernelNames[k]
}

// ParseKernelSize resolves a display name, case-insensitively
func ParseKernelSize(name string) (KernelSize, error) {
	for i, n := range kernelNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return KernelSize(i), nil
		}
	}
	return KernelLarge, fmt.Errorf("unknown kernel size %q", name)
}

// radius returns the box radius scaled to a frame height
func (k KernelSize) radius(height int) int {
	if int(k) >= len(kernelRadii) {
		k = KernelHuge
	}
	r := kernelRadii[k] * height / 540
	if r < 1 {
		r = 1
	}
	return r
}

// MarshalYAML encodes the size by display name
func (k KernelSize) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a display name
func (k *KernelSize) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseKernelSize(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
