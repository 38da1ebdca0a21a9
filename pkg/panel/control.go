package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"fxviewer/internal/util"
)

var (
	// ErrUnknownControl is returned for a group or field that does not exist
	ErrUnknownControl = errors.New("panel: unknown control")
	// ErrValueType is returned when a value has the wrong kind for its control
	ErrValueType = errors.New("panel: wrong value type")
)

// Kind identifies the widget type of a control
type Kind int

const (
	KindToggle Kind = iota
	KindSlider
	KindSelect
)

// Control is one live-editable field. Set applies immediately to the bound
// field; writing the same value twice leaves the state unchanged.
type Control interface {
	Name() string
	Kind() Kind
	Value() interface{}
	Set(value interface{}) error
	// Format renders the current value for display
	Format() string
}

// Toggle binds a boolean field
type Toggle struct {
	name string
	get  func() bool
	set  func(bool)
}

// NewToggle creates a toggle over get/set
func NewToggle(name string, get func() bool, set func(bool)) *Toggle {
	return &Toggle{name: name, get: get, set: set}
}

func (t *Toggle) Name() string       { return t.name }
func (t *Toggle) Kind() Kind         { return KindToggle }
func (t *Toggle) Value() interface{} { return t.get() }

// Set accepts a bool
func (t *Toggle) Set(value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a bool, got %T", ErrValueType, t.name, value)
	}
	t.set(b)
	return nil
}

// Flip inverts the toggle
func (t *Toggle) Flip() {
	t.set(!t.get())
}

func (t *Toggle) Format() string {
	if t.get() {
		return "[x]"
	}
	return "[ ]"
}

// Slider binds a numeric field limited to [Min, Max]
type Slider struct {
	name string
	Min  float64
	Max  float64
	// Step snaps values to Min + k*Step; 0 leaves them continuous
	Step float64
	get  func() float64
	set  func(float64)
}

// NewSlider creates a slider over get/set
func NewSlider(name string, min, max, step float64, get func() float64, set func(float64)) *Slider {
	return &Slider{name: name, Min: min, Max: max, Step: step, get: get, set: set}
}

func (s *Slider) Name() string       { return s.name }
func (s *Slider) Kind() Kind         { return KindSlider }
func (s *Slider) Value() interface{} { return s.get() }

// Set accepts any Go number. The value is snapped to the step and clamped
// to the slider range before it reaches the bound field.
func (s *Slider) Set(value interface{}) error {
	v, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("%w: %s expects a number, got %T", ErrValueType, s.name, value)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("%w: %s got NaN", ErrValueType, s.name)
	}
	s.set(s.Constrain(v))
	return nil
}

// Constrain snaps and clamps v to what the slider can hold
func (s *Slider) Constrain(v float64) float64 {
	v = util.Snap(v, s.Min, s.Step)
	return util.Clamp(v, s.Min, s.Max)
}

// Increment is the navigation step: Step, or a hundredth of the range
func (s *Slider) Increment() float64 {
	if s.Step > 0 {
		return s.Step
	}
	return (s.Max - s.Min) / 100
}

func (s *Slider) Format() string {
	return strconv.FormatFloat(s.get(), 'f', s.decimals(), 64)
}

// decimals picks display precision from the step
func (s *Slider) decimals() int {
	inc := s.Increment()
	if inc <= 0 || inc >= 1 {
		return 2
	}
	d := int(math.Ceil(-math.Log10(inc)))
	return max(d, 2)
}

// Select binds a field with a fixed list of named options
type Select struct {
	name    string
	Options []string
	get     func() string
	set     func(string) error
}

// NewSelect creates a select over get/set. set receives one of options.
func NewSelect(name string, options []string, get func() string, set func(string) error) *Select {
	return &Select{name: name, Options: options, get: get, set: set}
}

func (s *Select) Name() string       { return s.name }
func (s *Select) Kind() Kind         { return KindSelect }
func (s *Select) Value() interface{} { return s.get() }

// Set accepts an option name
func (s *Select) Set(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		if st, isStringer := value.(fmt.Stringer); isStringer {
			name, ok = st.String(), true
		}
	}
	if !ok {
		return fmt.Errorf("%w: %s expects an option name, got %T", ErrValueType, s.name, value)
	}
	for _, o := range s.Options {
		if o == name {
			return s.set(o)
		}
	}
	return fmt.Errorf("%w: %s has no option %q", ErrValueType, s.name, name)
}

// Index returns the position of the current option, or -1
func (s *Select) Index() int {
	cur := s.get()
	for i, o := range s.Options {
		if o == cur {
			return i
		}
	}
	return -1
}

func (s *Select) Format() string {
	return "< " + s.get() + " >"
}

func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
